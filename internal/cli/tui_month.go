package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"questlog/internal/calendar"
	"questlog/internal/schedule"
	"questlog/internal/timeparse"
)

const monthRows = calendar.MonthCells / calendar.DaysPerWeek

func (m tuiModel) renderMonthGrid(width, height int) string {
	colW := width / calendar.DaysPerWeek
	if colW < 4 {
		colW = 4
	}
	cellH := (height - 1) / monthRows
	if cellH < 2 {
		cellH = 2
	}
	byDay := monthOccurrences(m.app, m.st.Current)
	cells := calendar.Month(m.st.Current, m.now)

	var header strings.Builder
	for _, name := range calendar.DayNames {
		header.WriteString(lipgloss.NewStyle().Bold(true).Render(padText(strings.ToUpper(name), colW)))
	}
	lines := []string{header.String()}

	for row := 0; row < monthRows; row++ {
		block := make([]string, cellH)
		for col := 0; col < calendar.DaysPerWeek; col++ {
			cell := cells[row*calendar.DaysPerWeek+col]
			for i, text := range m.monthCellLines(cell, colW, cellH, byDay) {
				block[i] += text
			}
		}
		lines = append(lines, block...)
	}
	return strings.Join(lines, "\n")
}

// monthCellLines renders one day as cellH lines: the day number, then one
// line per scheduled block in category color.
func (m tuiModel) monthCellLines(cell calendar.Cell, colW, cellH int, byDay map[string][]schedule.Occurrence) []string {
	out := make([]string, cellH)
	blank := strings.Repeat(" ", colW)
	if cell.Placeholder() {
		for i := range out {
			out[i] = lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Render(padText("░", colW))
		}
		return out
	}
	num := fmt.Sprintf("%2d", cell.Day)
	numStyle := lipgloss.NewStyle().Bold(true)
	if cell.Today {
		numStyle = numStyle.Reverse(true).Foreground(colorAccent)
	}
	out[0] = numStyle.Render(num) + strings.Repeat(" ", max(colW-lipgloss.Width(num), 0))

	occ := byDay[cell.Date.Format(timeparse.DateLayout)]
	for i := 1; i < cellH; i++ {
		idx := i - 1
		switch {
		case idx < len(occ) && (i < cellH-1 || len(occ) <= cellH-1):
			item := occ[idx].Item
			bg, fg := item.Category.Colors()
			style := lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(fg))
			out[i] = style.Render(padText(" "+item.Title, colW-1)) + " "
		case idx < len(occ):
			out[i] = lipgloss.NewStyle().Foreground(colorMuted).Render(padText(fmt.Sprintf(" +%d more", len(occ)-idx), colW))
		default:
			out[i] = blank
		}
	}
	return out
}
