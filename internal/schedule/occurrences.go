package schedule

import (
	"sort"
	"time"

	"questlog/internal/recurrence"
)

// Occurrence is one concrete instance of an item on a calendar date.
type Occurrence struct {
	Item  Item
	Start time.Time
	End   time.Time
}

// Occurrences expands every item's weekly rule into [from, to]. The rule is
// anchored on the first matching weekday at or after anchor, so items do not
// appear before the schedule starts. Results are ordered by start time.
func Occurrences(items []Item, anchor, from, to time.Time, loc *time.Location) ([]Occurrence, error) {
	if loc == nil {
		loc = time.Local
	}
	var out []Occurrence
	for _, item := range items {
		times, err := recurrence.Between(item.Rule(), firstStart(item, anchor, loc), from, to, loc)
		if err != nil {
			return nil, err
		}
		for _, t := range times {
			out = append(out, Occurrence{
				Item:  item,
				Start: t,
				End:   t.Add(hoursToDuration(item.Duration)),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// Next returns the first occurrence of any item starting strictly after now.
func Next(items []Item, now time.Time, loc *time.Location) (Occurrence, bool, error) {
	if loc == nil {
		loc = time.Local
	}
	anchor := now.In(loc).AddDate(0, 0, -7)
	var best Occurrence
	found := false
	for _, item := range items {
		start, ok, err := recurrence.NextOccurrence(item.Rule(), firstStart(item, anchor, loc), now, loc)
		if err != nil {
			return Occurrence{}, false, err
		}
		if !ok || (found && !start.Before(best.Start)) {
			continue
		}
		best = Occurrence{Item: item, Start: start, End: start.Add(hoursToDuration(item.Duration))}
		found = true
	}
	return best, found, nil
}

// firstStart is the item's first start on or after anchor's date.
func firstStart(item Item, anchor time.Time, loc *time.Location) time.Time {
	y, m, d := anchor.In(loc).Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, loc)
	offset := (item.DayIndex - int(base.Weekday()) + 7) % 7
	minutes := int(item.StartHour*60 + 0.5)
	return time.Date(base.Year(), base.Month(), base.Day()+offset, minutes/60, minutes%60, 0, 0, loc)
}

// ByDay groups occurrences by calendar date (YYYY-MM-DD).
func ByDay(occurrences []Occurrence) map[string][]Occurrence {
	out := map[string][]Occurrence{}
	for _, occ := range occurrences {
		key := occ.Start.Format("2006-01-02")
		out[key] = append(out[key], occ)
	}
	return out
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
