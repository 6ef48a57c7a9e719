// Package schedule holds the fixed weekly schedule shown on the week grid.
package schedule

import (
	"errors"
	"fmt"
	"strings"

	"questlog/internal/recurrence"
	"questlog/internal/timeparse"
)

// ErrInvalidItem is wrapped by Validate for items that cannot be placed sensibly.
var ErrInvalidItem = errors.New("invalid schedule item")

type Category string

const (
	CategorySTAT414 Category = "STAT414"
	CategoryENGL15  Category = "ENGL15"
	CategoryMATH232 Category = "MATH232"
	CategoryOther   Category = "OTHER"
)

// ParseCategory is lenient: unknown names become CategoryOther.
func ParseCategory(s string) Category {
	switch Category(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))) {
	case CategorySTAT414:
		return CategorySTAT414
	case CategoryENGL15:
		return CategoryENGL15
	case CategoryMATH232:
		return CategoryMATH232
	default:
		return CategoryOther
	}
}

// Colors returns the background and foreground ANSI colors for a category.
func (c Category) Colors() (bg, fg string) {
	switch c {
	case CategorySTAT414:
		return "160", "231"
	case CategoryENGL15:
		return "27", "231"
	case CategoryMATH232:
		return "220", "16"
	default:
		return "252", "16"
	}
}

// Item is one recurring block of the week. DayIndex is 0 for Sunday;
// StartHour and Duration are fractional hours (9.5 is 9:30).
type Item struct {
	ID        string   `json:"id" yaml:"id" toml:"id"`
	Title     string   `json:"title" yaml:"title" toml:"title"`
	DayIndex  int      `json:"day_index" yaml:"day_index" toml:"day_index"`
	StartHour float64  `json:"start_hour" yaml:"start_hour" toml:"start_hour"`
	Duration  float64  `json:"duration" yaml:"duration" toml:"duration"`
	Category  Category `json:"type" yaml:"type" toml:"type"`
}

func (i Item) EndHour() float64 { return i.StartHour + i.Duration }

// Span is the "9:00 - 10:15" text shown on an event block.
func (i Item) Span() string {
	return timeparse.FormatHour(i.StartHour) + " - " + timeparse.FormatHour(i.EndHour())
}

// Rule is the weekly RRULE the item repeats on.
func (i Item) Rule() string { return recurrence.WeeklyRule(i.DayIndex) }

// Validate checks the invariants the week grid relies on. Items outside the
// grid hours are still valid; they render partly off-grid.
func (i Item) Validate() error {
	switch {
	case strings.TrimSpace(i.ID) == "":
		return fmt.Errorf("%w: missing id", ErrInvalidItem)
	case i.DayIndex < 0 || i.DayIndex > 6:
		return fmt.Errorf("%w: %s: day_index %d out of range", ErrInvalidItem, i.ID, i.DayIndex)
	case i.StartHour <= 0 || i.StartHour >= 24:
		return fmt.Errorf("%w: %s: start_hour %v out of range", ErrInvalidItem, i.ID, i.StartHour)
	case i.Duration <= 0:
		return fmt.Errorf("%w: %s: duration must be positive", ErrInvalidItem, i.ID)
	}
	return nil
}

// Validate checks every item and that IDs are unique.
func Validate(items []Item) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if seen[item.ID] {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidItem, item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

// OnDay returns the items for dayIndex in input order.
func OnDay(items []Item, dayIndex int) []Item {
	var out []Item
	for _, item := range items {
		if item.DayIndex == dayIndex {
			out = append(out, item)
		}
	}
	return out
}

// Defaults is the built-in course schedule.
func Defaults() []Item {
	return []Item{
		{ID: "s1", Title: "STAT 414", DayIndex: 1, StartHour: 9, Duration: 1.25, Category: CategorySTAT414},
		{ID: "m1", Title: "MATH 232", DayIndex: 1, StartHour: 11, Duration: 1.25, Category: CategoryMATH232},
		{ID: "e1", Title: "ENGL 15", DayIndex: 1, StartHour: 14, Duration: 1.5, Category: CategoryENGL15},
		{ID: "s2", Title: "STAT 414", DayIndex: 2, StartHour: 9, Duration: 1.25, Category: CategorySTAT414},
		{ID: "study1", Title: "Deep Work", DayIndex: 2, StartHour: 13, Duration: 2, Category: CategoryOther},
		{ID: "s3", Title: "STAT 414", DayIndex: 3, StartHour: 9, Duration: 1.25, Category: CategorySTAT414},
		{ID: "m2", Title: "MATH 232", DayIndex: 3, StartHour: 11, Duration: 1.25, Category: CategoryMATH232},
		{ID: "e2", Title: "ENGL 15", DayIndex: 3, StartHour: 14, Duration: 1.5, Category: CategoryENGL15},
		{ID: "m3", Title: "MATH 232", DayIndex: 4, StartHour: 10, Duration: 1.5, Category: CategoryMATH232},
		{ID: "e3", Title: "ENGL 15", DayIndex: 5, StartHour: 14, Duration: 1.5, Category: CategoryENGL15},
	}
}
