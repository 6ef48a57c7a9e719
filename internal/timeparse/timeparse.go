package timeparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func ParseDate(dateStr string, now time.Time, loc *time.Location) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(DateLayout, dateStr, loc); err == nil {
		return t, nil
	}
	parsed, err := naturaldate.Parse(dateStr, now.In(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc), nil
}

// ParseClock reads "H:MM" or "HH:MM" on base's date. Minutes must be two digits.
func ParseClock(clock string, base time.Time, loc *time.Location) (time.Time, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 || !digits(hh) || !digits(mm) {
		return time.Time{}, fmt.Errorf("invalid clock: %s", clock)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock: %s", clock)
	}
	min, err := strconv.Atoi(mm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock: %s", clock)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return time.Time{}, fmt.Errorf("invalid clock: %s", clock)
	}
	return time.Date(base.Year(), base.Month(), base.Day(), hour, min, 0, 0, loc), nil
}

// NormalizeDate turns free-form input ("tomorrow", "2025-02-01") into YYYY-MM-DD.
func NormalizeDate(input string, now time.Time, loc *time.Location) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("date is required")
	}
	day, err := ParseDate(input, now, loc)
	if err != nil {
		return "", err
	}
	return day.Format(DateLayout), nil
}

// NormalizeClock accepts "9:05", "09:05" or "9" and returns HH:MM.
func NormalizeClock(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("time is required")
	}
	if !strings.Contains(input, ":") {
		input += ":00"
	}
	t, err := ParseClock(input, time.Time{}, time.UTC)
	if err != nil {
		return "", err
	}
	return t.Format(ClockLayout), nil
}

// FractionalHour is the hour of t plus minutes and seconds as a fraction.
func FractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// FormatHour renders a fractional hour as H:MM ("9.25" -> "9:15").
func FormatHour(hour float64) string {
	total := int(hour*60 + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
