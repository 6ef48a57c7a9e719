package recurrence

import (
	"fmt"
	"strings"
)

var dayMap = map[string]int{
	"sunday":    0,
	"sun":       0,
	"su":        0,
	"monday":    1,
	"mon":       1,
	"mo":        1,
	"tuesday":   2,
	"tue":       2,
	"tues":      2,
	"tu":        2,
	"wednesday": 3,
	"wed":       3,
	"we":        3,
	"thursday":  4,
	"thu":       4,
	"thurs":     4,
	"th":        4,
	"friday":    5,
	"fri":       5,
	"fr":        5,
	"saturday":  6,
	"sat":       6,
	"sa":        6,
}

// byDayCodes is indexed by day index, Sunday first.
var byDayCodes = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// ParseDays turns "mon wed fri", "Tue, Thu", "weekdays" or "daily" into
// sorted day indexes (0=Sunday).
func ParseDays(input string) ([]int, error) {
	clean := normalize(input)
	if clean == "" {
		return nil, nil
	}
	switch clean {
	case "daily", "every day", "everyday":
		return []int{0, 1, 2, 3, 4, 5, 6}, nil
	case "weekday", "weekdays":
		return []int{1, 2, 3, 4, 5}, nil
	case "weekend", "weekends":
		return []int{0, 6}, nil
	}
	found := map[int]bool{}
	for _, token := range strings.FieldsFunc(clean, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '/'
	}) {
		idx, ok := dayMap[strings.Trim(token, ".:")]
		if !ok {
			return nil, fmt.Errorf("unsupported day: %s", token)
		}
		found[idx] = true
	}
	days := make([]int, 0, len(found))
	for i := 0; i < 7; i++ {
		if found[i] {
			days = append(days, i)
		}
	}
	return days, nil
}

// WeeklyRule is the RRULE for an item repeating every week on dayIndex.
func WeeklyRule(dayIndex int) string {
	return "RRULE:FREQ=WEEKLY;BYDAY=" + DayCode(dayIndex)
}

// DayCode maps a day index to its RRULE weekday code. Out-of-range indexes wrap.
func DayCode(dayIndex int) string {
	return byDayCodes[((dayIndex%7)+7)%7]
}

func normalize(input string) string {
	value := strings.ToLower(strings.TrimSpace(input))
	value = strings.TrimPrefix(value, "every ")
	if value == "day" {
		return "daily"
	}
	return strings.Join(strings.Fields(value), " ")
}
