// Package agenda splits a day's grid window into busy and free time.
package agenda

import (
	"fmt"
	"sort"
	"time"

	"questlog/internal/schedule"
)

type Slot struct {
	Start time.Time
	End   time.Time
}

func (s Slot) Duration() time.Duration { return s.End.Sub(s.Start) }

// DayBounds returns the visible grid window of day, from startHour to endHour.
// endHour may be 24, meaning midnight at the end of the day.
func DayBounds(day time.Time, startHour, endHour int) (time.Time, time.Time, error) {
	if startHour < 0 || endHour > 24 || endHour <= startHour {
		return time.Time{}, time.Time{}, fmt.Errorf("grid hours %d-%d are invalid", startHour, endHour)
	}
	y, m, d := day.Date()
	loc := day.Location()
	return time.Date(y, m, d, startHour, 0, 0, 0, loc), time.Date(y, m, d, endHour, 0, 0, 0, loc), nil
}

// Busy clips the occurrences to [dayStart, dayEnd] and merges the ones that
// overlap or touch. The result is sorted and non-overlapping.
func Busy(occurrences []schedule.Occurrence, dayStart, dayEnd time.Time) []Slot {
	clipped := make([]Slot, 0, len(occurrences))
	for _, occ := range occurrences {
		start, end := occ.Start, occ.End
		if start.Before(dayStart) {
			start = dayStart
		}
		if end.After(dayEnd) {
			end = dayEnd
		}
		if !end.After(start) {
			continue
		}
		clipped = append(clipped, Slot{Start: start, End: end})
	}
	sort.Slice(clipped, func(i, j int) bool { return clipped[i].Start.Before(clipped[j].Start) })

	var merged []Slot
	for _, s := range clipped {
		if n := len(merged); n > 0 && !s.Start.After(merged[n-1].End) {
			if s.End.After(merged[n-1].End) {
				merged[n-1].End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// FreeSlots is the complement of Busy inside the window.
func FreeSlots(occurrences []schedule.Occurrence, dayStart, dayEnd time.Time) []Slot {
	var free []Slot
	cursor := dayStart
	for _, b := range Busy(occurrences, dayStart, dayEnd) {
		if b.Start.After(cursor) {
			free = append(free, Slot{Start: cursor, End: b.Start})
		}
		cursor = b.End
	}
	if dayEnd.After(cursor) {
		free = append(free, Slot{Start: cursor, End: dayEnd})
	}
	return free
}

func Total(slots []Slot) time.Duration {
	var total time.Duration
	for _, s := range slots {
		total += s.Duration()
	}
	return total
}
