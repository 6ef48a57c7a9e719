package recurrence

import (
	"fmt"
	"strings"
	"time"

	rrule "github.com/teambition/rrule-go"
)

var freqUnits = map[rrule.Frequency][2]string{
	rrule.DAILY:   {"daily", "days"},
	rrule.WEEKLY:  {"weekly", "weeks"},
	rrule.MONTHLY: {"monthly", "months"},
	rrule.YEARLY:  {"yearly", "years"},
}

// Describe turns a rule into a short phrase such as "weekly on Mon, Wed" or
// "every 2 weeks on Fri, until Mar 28". It reports false for rules it cannot
// parse or frequencies below a day.
func Describe(rule string, loc *time.Location) (string, bool) {
	clean := strings.TrimSpace(rule)
	if clean == "" {
		return "", false
	}
	opt, err := rrule.StrToROptionInLocation(clean, locationOrLocal(loc))
	if err != nil {
		return "", false
	}
	units, ok := freqUnits[opt.Freq]
	if !ok {
		return "", false
	}
	phrase := units[0]
	if opt.Interval > 1 {
		phrase = fmt.Sprintf("every %d %s", opt.Interval, units[1])
	}
	if len(opt.Byweekday) > 0 {
		names := make([]string, 0, len(opt.Byweekday))
		for _, wd := range opt.Byweekday {
			names = append(names, dayName(wd))
		}
		phrase += " on " + strings.Join(names, ", ")
	}
	switch {
	case !opt.Until.IsZero():
		phrase += ", until " + opt.Until.In(locationOrLocal(loc)).Format("Jan 2")
	case opt.Count > 0:
		phrase += fmt.Sprintf(", %d times", opt.Count)
	}
	return phrase, true
}

// dayName maps an rrule weekday (Monday first) to "Mon".."Sun".
func dayName(wd rrule.Weekday) string {
	return time.Weekday((wd.Day() + 1) % 7).String()[:3]
}
