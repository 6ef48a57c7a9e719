package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"questlog/internal/agenda"
	"questlog/internal/calendar"
	"questlog/internal/layout"
	"questlog/internal/schedule"
	"questlog/internal/timeparse"
)

// weekParams lays the grid out in terminal cells: one unit per row and
// GridWidth rounded so every column gets the same whole width.
func (m tuiModel) weekParams(width int) (layout.Params, int) {
	colW := width / layout.Columns
	if colW < 4 {
		colW = 4
	}
	cfg := m.app.Config
	return layout.Params{
		GridStartHour: float64(cfg.GridStartHour),
		GridEndHour:   float64(cfg.GridEndHour),
		UnitsPerHour:  float64(cfg.RowsPerHour),
		GridWidth:     float64(colW * layout.Columns),
	}, colW
}

// tzLabel is the "GMT-5" style offset shown above the time column.
func tzLabel(t time.Time) string {
	_, offset := t.Zone()
	hours := offset / 3600
	minutes := (offset % 3600) / 60
	if minutes < 0 {
		minutes = -minutes
	}
	sign := "+"
	if offset < 0 {
		sign = "-"
		hours = -hours
	}
	if minutes == 0 {
		return fmt.Sprintf("GMT%s%d", sign, hours)
	}
	return fmt.Sprintf("GMT%s%d:%02d", sign, hours, minutes)
}

func (m tuiModel) todayColumn(days []calendar.Day) int {
	for i, d := range days {
		if sameDay(d.Date, m.now) {
			return i
		}
	}
	return -1
}

func (m tuiModel) renderWeekHeader(width int) string {
	_, colW := m.weekParams(width)
	days := calendar.Week(m.st.Current)
	today := m.todayColumn(days)
	cells := []string{lipgloss.NewStyle().Foreground(colorMuted).Render(padText(tzLabel(m.now), colW))}
	for i, day := range days {
		style := lipgloss.NewStyle()
		if i == today {
			style = style.Foreground(colorAccent).Bold(true)
		}
		if i == m.dayIndex && m.focus == focusCalendar {
			style = style.Underline(true)
		}
		cells = append(cells, style.Render(padText(fmt.Sprintf("%s %d", day.Name, day.Date.Day()), colW)))
	}
	return strings.Join(cells, "")
}

// renderWeekRows draws the time axis and the schedule blocks. It returns the
// row to scroll to: the now line when it is visible, 8:00 otherwise.
func (m tuiModel) renderWeekRows(width int) (string, int) {
	params, colW := m.weekParams(width)
	cfg := m.app.Config
	slots := layout.TimeSlots(cfg.GridStartHour, cfg.GridEndHour, 60/cfg.RowsPerHour)
	geoms := layout.PlaceAll(m.app.Schedule, params)
	days := calendar.Week(m.st.Current)
	today := m.todayColumn(days)

	nowRow := -1
	if today >= 0 {
		if offset := params.Offset(m.now); params.InRange(offset) {
			nowRow = int(offset)
		}
	}
	focusRow := nowRow
	if focusRow < 0 {
		focusRow = int((8 - params.GridStartHour) * params.UnitsPerHour)
		if focusRow < 0 {
			focusRow = 0
		}
	}

	labelStyle := lipgloss.NewStyle().Foreground(colorMuted)
	hourStyle := lipgloss.NewStyle().Bold(true)
	nowStyle := lipgloss.NewStyle().Foreground(colorNowLine).Bold(true)

	rows := make([]string, len(slots))
	for r, slot := range slots {
		var label string
		switch {
		case r == nowRow:
			label = nowStyle.Render(padText("▶"+m.now.Format("15:04"), colW))
		case slot.OnHour():
			label = hourStyle.Render(padText(slot.Label, colW))
		default:
			label = labelStyle.Render(padText(slot.Label, colW))
		}
		var b strings.Builder
		b.WriteString(label)
		for d := 0; d < calendar.DaysPerWeek; d++ {
			b.WriteString(m.renderWeekCell(geoms, d, r, colW, r == nowRow && d == today, slot.OnHour()))
		}
		rows[r] = b.String()
	}
	return strings.Join(rows, "\n"), focusRow
}

func (m tuiModel) renderWeekCell(geoms []layout.Geometry, day, row, colW int, nowLine, onHour bool) string {
	for i, g := range geoms {
		if g.Column != day+1 {
			continue
		}
		top := int(math.Floor(g.Top))
		bottom := int(math.Ceil(g.Bottom()))
		if bottom <= top {
			bottom = top + 1
		}
		if row < top || row >= bottom {
			continue
		}
		item := m.app.Schedule[i]
		first := top
		if first < 0 {
			first = 0
		}
		text := ""
		switch row - first {
		case 0:
			text = item.Title
		case 1:
			text = item.Span()
		}
		bg, fg := item.Category.Colors()
		style := lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(fg))
		if row == first {
			style = style.Bold(true)
		}
		return style.Render(padText(" "+text, colW-1)) + " "
	}
	switch {
	case nowLine:
		return lipgloss.NewStyle().Foreground(colorNowLine).Render(strings.Repeat("─", colW))
	case onHour:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Render(strings.Repeat("·", colW-1)) + " "
	default:
		return strings.Repeat(" ", colW)
	}
}

// renderDayDetails lists the selected day's blocks and the free time between them.
func (m tuiModel) renderDayDetails(width int) string {
	days := calendar.Week(m.st.Current)
	if m.dayIndex < 0 || m.dayIndex >= len(days) {
		return ""
	}
	day := days[m.dayIndex]
	occ := weekOccurrences(m.app, m.st.Current)[day.Date.Format(timeparse.DateLayout)]
	line := fmt.Sprintf("%s %s · %s%s%s · free %s", day.Name, day.Label, blockCount(occ), busyText(m.app, day.Date, occ), nextText(m.app, m.now), freeText(m.app, day.Date, occ))
	return lipgloss.NewStyle().Foreground(colorMuted).Render(truncateText(line, width))
}

// busyText is the scheduled time inside the grid window, e.g. " (2h30m)".
func busyText(app *App, day time.Time, occ []schedule.Occurrence) string {
	dayStart, dayEnd, err := agenda.DayBounds(day, app.Config.GridStartHour, app.Config.GridEndHour)
	if err != nil {
		return ""
	}
	total := agenda.Total(agenda.Busy(occ, dayStart, dayEnd))
	if total == 0 {
		return ""
	}
	return " (" + strings.TrimSuffix(total.String(), "0s") + ")"
}

// nextText names the next scheduled block after now, e.g. " · next MATH 232 Wed 11:00".
func nextText(app *App, now time.Time) string {
	next, ok, err := schedule.Next(app.Schedule, now, app.Location)
	if err != nil {
		app.Logger.Warn("next block", "err", err)
		return ""
	}
	if !ok {
		return ""
	}
	return fmt.Sprintf(" · next %s %s %s", next.Item.Title, next.Start.Format("Mon"), timeparse.FormatHour(timeparse.FractionalHour(next.Start)))
}

func blockCount(occ []schedule.Occurrence) string {
	if len(occ) == 1 {
		return "1 block"
	}
	return fmt.Sprintf("%d blocks", len(occ))
}
