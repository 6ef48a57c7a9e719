package schedule

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

const prodID = "-//questlog//weekly schedule//EN"

// WriteICS writes the schedule as weekly recurring VEVENTs whose first
// occurrence falls in the week starting at weekStart (a Sunday).
func WriteICS(w io.Writer, items []Item, weekStart, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	loc := weekStart.Location()
	for _, item := range items {
		minutes := int(item.StartHour*60 + 0.5)
		start := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day()+item.DayIndex, minutes/60, minutes%60, 0, 0, loc)
		end := start.Add(hoursToDuration(item.Duration))

		event := cal.AddEvent(fmt.Sprintf("%s@questlog", item.ID))
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(item.Title)
		event.SetDescription(fmt.Sprintf("%s · %s", item.Category, item.Span()))
		event.AddProperty(ical.ComponentPropertyCategories, string(item.Category))
		event.AddProperty(ical.ComponentPropertyRrule, strings.TrimPrefix(item.Rule(), "RRULE:"))
	}
	return cal.SerializeTo(w)
}
