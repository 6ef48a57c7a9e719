// Package calendar builds the week and month grids shown by the main pane.
package calendar

import (
	"fmt"
	"time"
)

const (
	DaysPerWeek = 7
	// MonthCells is the fixed 6x7 month layout. Six rows cover every month
	// length and start weekday.
	MonthCells = 42
)

// DayNames are the column labels, Sunday first.
var DayNames = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Mode selects which grid the main pane renders.
type Mode string

const (
	Weekly  Mode = "weekly"
	Monthly Mode = "monthly"
)

// ParseMode accepts "week", "weekly", "month" and "monthly".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "week", "weekly":
		return Weekly, nil
	case "month", "monthly":
		return Monthly, nil
	default:
		return "", fmt.Errorf("unknown view mode: %s", s)
	}
}

type Day struct {
	Name  string
	Date  time.Time
	Label string
	Index int
}

// Cell is one slot of the month grid. Placeholder cells have Day == 0.
type Cell struct {
	Day   int
	Date  time.Time
	Today bool
}

func (c Cell) Placeholder() bool { return c.Day == 0 }

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Sunday that starts ref's week.
func WeekStart(ref time.Time) time.Time {
	day := startOfDay(ref)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// Week returns the seven days of ref's week, Sunday through Saturday.
func Week(ref time.Time) []Day {
	start := WeekStart(ref)
	days := make([]Day, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		date := start.AddDate(0, 0, i)
		days = append(days, Day{
			Name:  DayNames[i],
			Date:  date,
			Label: ShortDate(date),
			Index: i,
		})
	}
	return days
}

// Month returns exactly MonthCells cells for ref's month: placeholders for
// the leading weekday offset, one cell per day, then trailing placeholders.
// today marks the matching cell; pass the zero time to mark nothing.
func Month(ref, today time.Time) []Cell {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	offset := int(first.Weekday())
	total := DaysInMonth(ref.Year(), ref.Month())

	cells := make([]Cell, 0, MonthCells)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{})
	}
	for d := 1; d <= total; d++ {
		date := first.AddDate(0, 0, d-1)
		cells = append(cells, Cell{
			Day:   d,
			Date:  date,
			Today: !today.IsZero() && sameDay(date, today),
		})
	}
	for len(cells) < MonthCells {
		cells = append(cells, Cell{})
	}
	return cells
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekNumber returns the ISO-8601 week of t as two digits. The date is moved
// to the Thursday of its Monday-based week and the week counted from Jan 1 of
// that Thursday's year.
func WeekNumber(t time.Time) string {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	thursday := d.AddDate(0, 0, 4-weekday)
	yearStart := time.Date(thursday.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	days := int(thursday.Sub(yearStart).Hours()/24) + 1
	week := (days + 6) / 7
	return fmt.Sprintf("%02d", week)
}

func ShortDate(t time.Time) string {
	return t.Format("Jan 2")
}

// WeekRangeText is the header text for the weekly view ("Jan 5 — Jan 11").
func WeekRangeText(ref time.Time) string {
	start := WeekStart(ref)
	end := start.AddDate(0, 0, DaysPerWeek-1)
	return ShortDate(start) + " — " + ShortDate(end)
}

// MonthText is the header text for the monthly view ("January 2025").
func MonthText(ref time.Time) string {
	return ref.Format("January 2006")
}

// Shift moves ref by delta weeks or months. Month moves keep the day of
// month when possible and clamp to the last day otherwise, so Jan 31 + 1
// month is Feb 28, not Mar 3.
func Shift(ref time.Time, mode Mode, delta int) time.Time {
	if mode != Monthly {
		return ref.AddDate(0, 0, DaysPerWeek*delta)
	}
	year, month := ref.Year(), ref.Month()+time.Month(delta)
	first := time.Date(year, month, 1, ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
	day := ref.Day()
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
