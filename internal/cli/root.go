package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"questlog/internal/calendar"
	"questlog/internal/config"
	"questlog/internal/logging"
	"questlog/internal/paths"
	"questlog/internal/schedule"
	"questlog/internal/timeparse"
)

type App struct {
	Config     *config.Config
	ConfigPath string
	Location   *time.Location
	Logger     *log.Logger
	Schedule   []schedule.Item
	Out        io.Writer

	// clock is swapped in tests; nil means time.Now.
	clock func() time.Time
}

// Now returns the current time in the app's configured location.
// Always use this instead of caching time at startup.
func (a *App) Now() time.Time {
	if a.clock != nil {
		return a.clock().In(a.Location)
	}
	return time.Now().In(a.Location)
}

func NewRootCmd() *cobra.Command {
	var viewStr, dateStr string
	cmd := &cobra.Command{
		Use:           "questlog",
		Short:         "Weekly schedule, month calendar and quest list in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			mode, err := resolveMode(app, viewStr)
			if err != nil {
				return err
			}
			ref, err := resolveDate(app, dateStr)
			if err != nil {
				return err
			}
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				app.Logger.Debug("stdout is not a terminal, printing instead of starting the TUI")
				if mode == calendar.Monthly {
					_, err = fmt.Fprintln(app.Out, buildMonthText(app, ref))
				} else {
					_, err = fmt.Fprintln(app.Out, buildWeekText(app, ref))
				}
				return err
			}
			return startTUI(app, mode, ref)
		},
	}
	cmd.PersistentFlags().String("config", "", "Path to config.json (defaults to ~/.config/questlog/config.json)")
	cmd.Flags().StringVar(&viewStr, "view", "", "Initial view: weekly or monthly (defaults to config default_view)")
	cmd.Flags().StringVar(&dateStr, "date", "", "Initial date (e.g. 'today', 'next monday', '2025-01-15')")

	cmd.AddCommand(newWeekCmd())
	cmd.AddCommand(newMonthCmd())
	cmd.AddCommand(newLayoutCmd())
	cmd.AddCommand(newScheduleCmd())
	cmd.AddCommand(newTasksCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newSetupCmd())

	return cmd
}

func initApp(cmd *cobra.Command) (*App, error) {
	cfgPath, err := resolveConfigPath(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	loc, err := timeparse.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}
	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	items, err := loadSchedule(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &App{
		Config:     cfg,
		ConfigPath: cfgPath,
		Location:   loc,
		Logger:     logger,
		Schedule:   items,
		Out:        cmd.OutOrStdout(),
	}, nil
}

func loadSchedule(cfg *config.Config, logger *log.Logger) ([]schedule.Item, error) {
	if cfg.ScheduleFile == "" {
		return schedule.Defaults(), nil
	}
	path := expandHome(cfg.ScheduleFile)
	items, err := schedule.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load schedule %s: %w", path, err)
	}
	logger.Debug("schedule loaded", "path", path, "items", len(items))
	return items, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}

func resolveMode(app *App, viewStr string) (calendar.Mode, error) {
	if strings.TrimSpace(viewStr) == "" {
		viewStr = app.Config.DefaultView
	}
	return calendar.ParseMode(strings.ToLower(strings.TrimSpace(viewStr)))
}

func resolveDate(app *App, dateStr string) (time.Time, error) {
	now := app.Now()
	if strings.TrimSpace(dateStr) == "" {
		return now, nil
	}
	day, err := timeparse.ParseDate(dateStr, now, app.Location)
	if err != nil {
		return time.Time{}, err
	}
	if day.IsZero() {
		return time.Time{}, fmt.Errorf("invalid date: %s", dateStr)
	}
	return day, nil
}

func resolveConfigPath(cmd *cobra.Command) (string, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		return paths.ConfigPath()
	}
	return cfgPath, nil
}

