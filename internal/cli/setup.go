package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"questlog/internal/config"
	"questlog/internal/schedule"
	"questlog/internal/timeparse"
)

type choiceItem[T any] struct {
	Label string
	Item  T
}

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactive setup for the calendar grid and schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrCreate(cfgPath)
			if err != nil {
				return err
			}

			printSection("Calendar")
			if err := setupCalendar(cfg); err != nil {
				return err
			}

			printSection("Time grid")
			if err := setupGrid(cfg); err != nil {
				return err
			}

			printSection("Schedule & quests")
			if err := setupSchedule(cfg); err != nil {
				return err
			}

			if err := config.Save(cfgPath, cfg); err != nil {
				return err
			}
			fmt.Printf("\nSetup complete. Config saved to %s\n", cfgPath)
			return nil
		},
	}
	return cmd
}

func setupCalendar(cfg *config.Config) error {
	var tz string
	prompt := &survey.Input{
		Message: "Time zone (IANA name or 'local')",
		Default: cfg.Timezone,
	}
	if err := survey.AskOne(prompt, &tz, survey.WithValidator(validateTimezone)); err != nil {
		return err
	}
	cfg.Timezone = strings.TrimSpace(tz)

	choices := []choiceItem[string]{
		{Label: "Weekly (time grid)", Item: config.ViewWeekly},
		{Label: "Monthly (calendar)", Item: config.ViewMonthly},
	}
	defaultLabel := choices[0].Label
	for _, choice := range choices {
		if choice.Item == cfg.DefaultView {
			defaultLabel = choice.Label
		}
	}
	var selected string
	if err := survey.AskOne(&survey.Select{
		Message: "Default view",
		Options: labelsFromChoices(choices),
		Default: defaultLabel,
	}, &selected, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	choice, ok := findChoice(choices, selected)
	if !ok {
		return fmt.Errorf("invalid view selection")
	}
	cfg.DefaultView = choice.Item
	return nil
}

func setupGrid(cfg *config.Config) error {
	start, err := askHour("First hour on the grid", cfg.GridStartHour, 0, 23)
	if err != nil {
		return err
	}
	end, err := askHour("Last hour on the grid", cfg.GridEndHour, start+1, 24)
	if err != nil {
		return err
	}
	cfg.GridStartHour = start
	cfg.GridEndHour = end

	slotChoices := []choiceItem[int]{
		{Label: "15 minutes", Item: 15},
		{Label: "30 minutes", Item: 30},
		{Label: "60 minutes", Item: 60},
	}
	defaultLabel := slotChoices[0].Label
	for _, choice := range slotChoices {
		if choice.Item == cfg.SlotMinutes {
			defaultLabel = choice.Label
		}
	}
	var selected string
	if err := survey.AskOne(&survey.Select{
		Message: "Slot length",
		Options: labelsFromChoices(slotChoices),
		Default: defaultLabel,
	}, &selected); err != nil {
		return err
	}
	if choice, ok := findChoice(slotChoices, selected); ok {
		cfg.SlotMinutes = choice.Item
	}
	if cfg.RowsPerHour > 60/cfg.SlotMinutes {
		cfg.RowsPerHour = 60 / cfg.SlotMinutes
	}
	return nil
}

func setupSchedule(cfg *config.Config) error {
	var file string
	prompt := &survey.Input{
		Message: "Schedule file (.yaml/.toml, empty for the built-in schedule)",
		Default: cfg.ScheduleFile,
	}
	if err := survey.AskOne(prompt, &file, survey.WithValidator(validateScheduleFile)); err != nil {
		return err
	}
	cfg.ScheduleFile = strings.TrimSpace(file)

	seed := !cfg.SkipSeed
	if err := survey.AskOne(&survey.Confirm{Message: "Start sessions with the sample quests?", Default: seed}, &seed); err != nil {
		return err
	}
	cfg.SkipSeed = !seed

	levels := []string{"debug", "info", "warn", "error"}
	defaultLevel := "info"
	for _, l := range levels {
		if strings.EqualFold(cfg.LogLevel, l) {
			defaultLevel = l
		}
	}
	var level string
	if err := survey.AskOne(&survey.Select{
		Message: "Log level",
		Options: levels,
		Default: defaultLevel,
	}, &level); err != nil {
		return err
	}
	cfg.LogLevel = level
	return nil
}

func askHour(message string, current, min, max int) (int, error) {
	var input string
	prompt := &survey.Input{Message: fmt.Sprintf("%s (%d-%d)", message, min, max), Default: strconv.Itoa(current)}
	validate := func(ans interface{}) error {
		n, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(ans)))
		if err != nil || n < min || n > max {
			return fmt.Errorf("enter a whole hour between %d and %d", min, max)
		}
		return nil
	}
	if err := survey.AskOne(prompt, &input, survey.WithValidator(validate)); err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(input))
}

func validateTimezone(ans interface{}) error {
	name := strings.TrimSpace(fmt.Sprint(ans))
	if _, err := timeparse.LoadLocation(name); err != nil {
		return fmt.Errorf("unknown time zone %q", name)
	}
	return nil
}

func validateScheduleFile(ans interface{}) error {
	path := strings.TrimSpace(fmt.Sprint(ans))
	if path == "" {
		return nil
	}
	if _, err := schedule.LoadFile(expandHome(path)); err != nil {
		return err
	}
	return nil
}

func labelsFromChoices[T any](choices []choiceItem[T]) []string {
	labels := make([]string, 0, len(choices))
	for _, choice := range choices {
		labels = append(labels, choice.Label)
	}
	return labels
}

func findChoice[T any](choices []choiceItem[T], label string) (choiceItem[T], bool) {
	for _, choice := range choices {
		if choice.Label == label {
			return choice, true
		}
	}
	var zero choiceItem[T]
	return zero, false
}

func printSection(title string) {
	fmt.Printf("\n\033[1m%s\033[0m\n", title)
}
