package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"questlog/internal/calendar"
	"questlog/internal/recurrence"
	"questlog/internal/schedule"
)

func newScheduleCmd() *cobra.Command {
	var icsPath, dateStr string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "List the weekly schedule or export it as iCalendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			if icsPath == "" {
				_, err = fmt.Fprintln(app.Out, buildScheduleText(app))
				return err
			}
			ref, err := resolveDate(app, dateStr)
			if err != nil {
				return err
			}
			return exportICS(app, icsPath, calendar.WeekStart(ref))
		},
	}
	cmd.Flags().StringVar(&icsPath, "ics", "", "Write the schedule as an .ics file ('-' for stdout)")
	cmd.Flags().StringVar(&dateStr, "date", "", "Week the exported events start in (defaults to this week)")
	return cmd
}

func buildScheduleText(app *App) string {
	var b strings.Builder
	source := "built-in"
	if app.Config.ScheduleFile != "" {
		source = app.Config.ScheduleFile
	}
	b.WriteString(fmt.Sprintf("Schedule (%s, %d items)\n", source, len(app.Schedule)))
	for day := 0; day < calendar.DaysPerWeek; day++ {
		items := schedule.OnDay(app.Schedule, day)
		if len(items) == 0 {
			continue
		}
		b.WriteString("\n" + strong(calendar.DayNames[day]) + "\n")
		for _, item := range items {
			repeat, ok := recurrence.Describe(item.Rule(), app.Location)
			if !ok {
				repeat = item.Rule()
			}
			b.WriteString(fmt.Sprintf("- %s %s %s %s\n", padText(item.Span(), 13), item.Title, categoryTag(item.Category), muted(repeat)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func exportICS(app *App, path string, weekStart time.Time) error {
	if path == "-" {
		return schedule.WriteICS(app.Out, app.Schedule, weekStart, app.Now())
	}
	// #nosec G304 -- path is given by the user on the command line
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := schedule.WriteICS(f, app.Schedule, weekStart, app.Now()); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	app.Logger.Info("schedule exported", "path", path, "events", len(app.Schedule), "week", weekStart.Format("2006-01-02"))
	return nil
}
