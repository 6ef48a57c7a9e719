package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"questlog/internal/agenda"
	"questlog/internal/calendar"
	"questlog/internal/layout"
	"questlog/internal/schedule"
	"questlog/internal/timeparse"
)

func newWeekCmd() *cobra.Command {
	var dateStr string
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the week schedule with free slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			ref, err := resolveDate(app, dateStr)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(app.Out, buildWeekText(app, ref))
			return err
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "Any date in the week (e.g. 'today', 'next week', '2025-01-15')")
	return cmd
}

func newMonthCmd() *cobra.Command {
	var dateStr string
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Print the month grid with schedule markers",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			ref, err := resolveDate(app, dateStr)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(app.Out, buildMonthText(app, ref))
			return err
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "Any date in the month")
	return cmd
}

func newLayoutCmd() *cobra.Command {
	var width float64
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the grid geometry of every schedule item",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			if width <= 0 {
				return fmt.Errorf("width must be positive")
			}
			_, err = fmt.Fprintln(app.Out, buildLayoutText(app, width))
			return err
		},
	}
	cmd.Flags().Float64Var(&width, "width", 800, "Grid width in pixels")
	return cmd
}

// pixelParams is the layout of the full-size grid, one slot_height per slot.
func pixelParams(app *App, width float64) layout.Params {
	return layout.Params{
		GridStartHour: float64(app.Config.GridStartHour),
		GridEndHour:   float64(app.Config.GridEndHour),
		UnitsPerHour:  app.Config.PixelsPerHour(),
		GridWidth:     width,
	}
}

func buildLayoutText(app *App, width float64) string {
	params := pixelParams(app, width)
	rows := [][]string{}
	for i, g := range layout.PlaceAll(app.Schedule, params) {
		item := app.Schedule[i]
		rows = append(rows, []string{
			item.ID,
			item.Title,
			calendar.DayNames[item.DayIndex],
			item.Span(),
			fmt.Sprintf("%d", g.Column),
			formatUnits(g.Top),
			formatUnits(g.Height),
			formatUnits(g.Left),
			formatUnits(g.Width),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("ID", "TITLE", "DAY", "TIME", "COL", "TOP", "HEIGHT", "LEFT", "WIDTH").
		Rows(rows...)
	header := fmt.Sprintf("Grid %d:00-%d:00 · %s px/hour · height %s px",
		app.Config.GridStartHour, app.Config.GridEndHour,
		formatUnits(params.UnitsPerHour), formatUnits(params.GridHeight()))
	return header + "\n" + t.String()
}

func formatUnits(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// weekOccurrences expands the schedule over the week containing ref.
func weekOccurrences(app *App, ref time.Time) map[string][]schedule.Occurrence {
	start := calendar.WeekStart(ref.In(app.Location))
	end := start.AddDate(0, 0, calendar.DaysPerWeek).Add(-time.Second)
	occ, err := schedule.Occurrences(app.Schedule, start, start, end, app.Location)
	if err != nil {
		app.Logger.Warn("expand schedule", "err", err)
		return map[string][]schedule.Occurrence{}
	}
	return schedule.ByDay(occ)
}

// monthOccurrences expands the schedule over the month containing ref.
func monthOccurrences(app *App, ref time.Time) map[string][]schedule.Occurrence {
	ref = ref.In(app.Location)
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, app.Location)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	occ, err := schedule.Occurrences(app.Schedule, start, start, end, app.Location)
	if err != nil {
		app.Logger.Warn("expand schedule", "err", err)
		return map[string][]schedule.Occurrence{}
	}
	return schedule.ByDay(occ)
}

func buildWeekText(app *App, ref time.Time) string {
	ref = ref.In(app.Location)
	byDay := weekOccurrences(app, ref)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("QUESTLOG · Week %s · %s\n", calendar.WeekNumber(ref), calendar.WeekRangeText(ref)))
	for _, day := range calendar.Week(ref) {
		b.WriteString(fmt.Sprintf("\n%s %s\n", day.Name, day.Label))
		key := day.Date.Format(timeparse.DateLayout)
		occ := byDay[key]
		if len(occ) == 0 {
			b.WriteString("- (nothing scheduled)\n")
		}
		for _, o := range occ {
			b.WriteString(fmt.Sprintf("- %s %s %s\n", padText(o.Item.Span(), 13), o.Item.Title, categoryTag(o.Item.Category)))
		}
		b.WriteString("  free: " + freeText(app, day.Date, occ) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func freeText(app *App, day time.Time, occ []schedule.Occurrence) string {
	dayStart, dayEnd, err := agenda.DayBounds(day, app.Config.GridStartHour, app.Config.GridEndHour)
	if err != nil {
		return err.Error()
	}
	free := agenda.FreeSlots(occ, dayStart, dayEnd)
	if len(free) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(free))
	for _, slot := range free {
		parts = append(parts, fmt.Sprintf("%s-%s", clockOn(slot.Start, day), clockOn(slot.End, day)))
	}
	return strings.Join(parts, ", ")
}

// clockOn renders t as H:MM, using 24:00 for the midnight that ends day.
func clockOn(t, day time.Time) string {
	if !sameDay(t, day) && t.After(day) {
		return "24:00"
	}
	return timeparse.FormatHour(timeparse.FractionalHour(t))
}

func buildMonthText(app *App, ref time.Time) string {
	ref = ref.In(app.Location)
	byDay := monthOccurrences(app, ref)
	const cellWidth = 8
	lines := []string{calendar.MonthText(ref), ""}
	var row strings.Builder
	for _, name := range calendar.DayNames {
		row.WriteString(padText(name, cellWidth))
	}
	lines = append(lines, strings.TrimRight(row.String(), " "))
	row.Reset()
	for i, cell := range calendar.Month(ref, app.Now()) {
		text := ""
		if !cell.Placeholder() {
			text = fmt.Sprintf("%d", cell.Day)
			if cell.Today {
				text = "[" + text + "]"
			}
			text += markers(len(byDay[cell.Date.Format(timeparse.DateLayout)]))
		}
		row.WriteString(padText(text, cellWidth))
		if (i+1)%calendar.DaysPerWeek == 0 {
			lines = append(lines, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	return strings.Join(lines, "\n")
}

// markers is one dot per scheduled block, capped at three.
func markers(n int) string {
	if n > 3 {
		n = 3
	}
	return strings.Repeat("•", n)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
