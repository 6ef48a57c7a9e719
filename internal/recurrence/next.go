package recurrence

import (
	"strings"
	"time"

	rrule "github.com/teambition/rrule-go"
)

func NextOccurrence(rule string, start time.Time, after time.Time, loc *time.Location) (time.Time, bool, error) {
	parsed, err := build(rule, start, after, loc)
	if err != nil || parsed == nil {
		return time.Time{}, false, err
	}
	location := locationOrLocal(loc)
	next := parsed.After(after.In(location), false)
	if next.IsZero() {
		return time.Time{}, false, nil
	}
	return next.In(location), true, nil
}

// Between returns the occurrences of rule starting at start within [from, to].
func Between(rule string, start, from, to time.Time, loc *time.Location) ([]time.Time, error) {
	parsed, err := build(rule, start, from, loc)
	if err != nil || parsed == nil {
		return nil, err
	}
	location := locationOrLocal(loc)
	return parsed.Between(from.In(location), to.In(location), true), nil
}

func build(rule string, start, fallback time.Time, loc *time.Location) (*rrule.RRule, error) {
	clean := strings.TrimSpace(rule)
	if clean == "" {
		return nil, nil
	}
	location := locationOrLocal(loc)
	option, err := rrule.StrToROptionInLocation(clean, location)
	if err != nil {
		return nil, err
	}
	if !start.IsZero() {
		option.Dtstart = start.In(location)
	} else if option.Dtstart.IsZero() {
		option.Dtstart = fallback.In(location)
	}
	return rrule.NewRRule(*option)
}

func locationOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
