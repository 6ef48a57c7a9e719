package calendar

import (
	"fmt"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestWeekStartsOnSunday(t *testing.T) {
	start := date(2024, 1, 1)
	for i := 0; i < 400; i++ {
		ref := start.AddDate(0, 0, i)
		days := Week(ref)
		if len(days) != DaysPerWeek {
			t.Fatalf("%s: expected 7 days, got %d", ref.Format("2006-01-02"), len(days))
		}
		if days[0].Date.Weekday() != time.Sunday {
			t.Fatalf("%s: week starts on %s", ref.Format("2006-01-02"), days[0].Date.Weekday())
		}
		for j := 1; j < len(days); j++ {
			if !days[j].Date.Equal(days[j-1].Date.AddDate(0, 0, 1)) {
				t.Fatalf("%s: day %d is not consecutive", ref.Format("2006-01-02"), j)
			}
			if days[j].Name != DayNames[j] {
				t.Fatalf("expected label %s, got %s", DayNames[j], days[j].Name)
			}
		}
		if ref.Before(days[0].Date) || !ref.Before(days[6].Date.AddDate(0, 0, 1)) {
			t.Fatalf("%s: not inside its own week", ref.Format("2006-01-02"))
		}
	}
}

func TestWeekLabels(t *testing.T) {
	days := Week(date(2025, 1, 8))
	if days[0].Label != "Jan 5" || days[6].Label != "Jan 11" {
		t.Fatalf("unexpected labels: %s .. %s", days[0].Label, days[6].Label)
	}
	if got := WeekRangeText(date(2025, 1, 8)); got != "Jan 5 — Jan 11" {
		t.Fatalf("unexpected range text: %q", got)
	}
}

func TestMonthAlwaysHas42Cells(t *testing.T) {
	for year := 2023; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			ref := date(year, month, 15)
			cells := Month(ref, time.Time{})
			if len(cells) != MonthCells {
				t.Fatalf("%d-%02d: expected 42 cells, got %d", year, month, len(cells))
			}
			offset := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
			total := DaysInMonth(year, month)
			for i, cell := range cells {
				inMonth := i >= offset && i < offset+total
				if inMonth == cell.Placeholder() {
					t.Fatalf("%d-%02d: cell %d placeholder=%v", year, month, i, cell.Placeholder())
				}
				if inMonth && cell.Day != i-offset+1 {
					t.Fatalf("%d-%02d: cell %d has day %d", year, month, i, cell.Day)
				}
			}
		}
	}
}

func TestMonthEdgeLayouts(t *testing.T) {
	// February 2026 starts on a Sunday and has 28 days: no leading padding.
	cells := Month(date(2026, 2, 10), time.Time{})
	if cells[0].Day != 1 || cells[27].Day != 28 || !cells[28].Placeholder() {
		t.Fatalf("unexpected February 2026 layout")
	}
	// August 2026 starts on a Saturday with 31 days: fills the sixth row.
	cells = Month(date(2026, 8, 1), time.Time{})
	if !cells[5].Placeholder() || cells[6].Day != 1 || cells[36].Day != 31 {
		t.Fatalf("unexpected August 2026 layout")
	}
}

func TestMonthMarksToday(t *testing.T) {
	today := date(2025, 3, 14)
	cells := Month(date(2025, 3, 1), today)
	marked := 0
	for _, c := range cells {
		if c.Today {
			marked++
			if c.Day != 14 {
				t.Fatalf("wrong cell marked as today: %d", c.Day)
			}
		}
	}
	if marked != 1 {
		t.Fatalf("expected exactly one today cell, got %d", marked)
	}
	for _, c := range Month(date(2025, 4, 1), today) {
		if c.Today {
			t.Fatalf("other months must not mark today")
		}
	}
}

func TestWeekNumber(t *testing.T) {
	cases := []struct {
		day  time.Time
		want string
	}{
		{date(2025, 1, 1), "01"},
		{date(2024, 12, 30), "01"},
		{date(2021, 1, 3), "53"},
		{date(2025, 1, 12), "02"},
		{date(2025, 6, 15), "24"},
		{date(2026, 12, 31), "53"},
	}
	for _, tc := range cases {
		if got := WeekNumber(tc.day); got != tc.want {
			t.Fatalf("WeekNumber(%s) = %s, want %s", tc.day.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestWeekNumberMatchesISOWeek(t *testing.T) {
	start := date(2020, 1, 1)
	for i := 0; i < 365*6; i++ {
		day := start.AddDate(0, 0, i)
		_, week := day.ISOWeek()
		if got := WeekNumber(day); got != fmt.Sprintf("%02d", week) {
			t.Fatalf("WeekNumber(%s) = %s, ISOWeek = %d", day.Format("2006-01-02"), got, week)
		}
	}
}

func TestShift(t *testing.T) {
	ref := date(2025, 1, 31)
	if got := Shift(ref, Weekly, 1); !got.Equal(date(2025, 2, 7)) {
		t.Fatalf("expected weekly shift to Feb 7, got %s", got)
	}
	if got := Shift(ref, Weekly, -1); !got.Equal(date(2025, 1, 24)) {
		t.Fatalf("expected weekly shift back to Jan 24, got %s", got)
	}
	if got := Shift(ref, Monthly, 1); !got.Equal(date(2025, 2, 28)) {
		t.Fatalf("expected clamped month shift to Feb 28, got %s", got)
	}
	if got := Shift(date(2025, 1, 15), Monthly, -1); !got.Equal(date(2024, 12, 15)) {
		t.Fatalf("expected month shift across year to Dec 15, got %s", got)
	}
	if got := MonthText(date(2025, 1, 15)); got != "January 2025" {
		t.Fatalf("unexpected month text %q", got)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("month"); err != nil || m != Monthly {
		t.Fatalf("expected monthly, got %v %v", m, err)
	}
	if _, err := ParseMode("daily"); err == nil {
		t.Fatalf("expected unknown mode to fail")
	}
}
