package schedule

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"questlog/internal/recurrence"
	"questlog/internal/timeparse"
)

type file struct {
	Items []fileItem `yaml:"items" toml:"items"`
}

// fileItem is the on-disk shape. Either DayIndex or Days selects the day;
// either StartHour or Start ("9:30") selects the start.
type fileItem struct {
	ID        string  `yaml:"id" toml:"id"`
	Title     string  `yaml:"title" toml:"title"`
	DayIndex  *int    `yaml:"day_index" toml:"day_index"`
	Days      string  `yaml:"days" toml:"days"`
	StartHour float64 `yaml:"start_hour" toml:"start_hour"`
	Start     string  `yaml:"start" toml:"start"`
	Duration  float64 `yaml:"duration" toml:"duration"`
	Type      string  `yaml:"type" toml:"type"`
}

// LoadFile reads a YAML (.yaml, .yml) or TOML (.toml) schedule file.
func LoadFile(path string) ([]Item, error) {
	// #nosec G304 -- path comes from the user's config
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported schedule file type: %s", path)
	}
}

func ParseYAML(data []byte) ([]Item, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse schedule yaml: %w", err)
	}
	return f.items()
}

func ParseTOML(data []byte) ([]Item, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse schedule toml: %w", err)
	}
	return f.items()
}

func (f file) items() ([]Item, error) {
	out := make([]Item, 0, len(f.Items))
	for i, raw := range f.Items {
		expanded, err := raw.expand()
		if err != nil {
			return nil, fmt.Errorf("schedule item %d: %w", i+1, err)
		}
		out = append(out, expanded...)
	}
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (fi fileItem) expand() ([]Item, error) {
	start := fi.StartHour
	if s := strings.TrimSpace(fi.Start); s != "" {
		clock, err := timeparse.NormalizeClock(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidItem, fi.ID, err)
		}
		t, err := time.Parse(timeparse.ClockLayout, clock)
		if err != nil {
			return nil, err
		}
		start = timeparse.FractionalHour(t)
	}
	base := Item{
		ID:        strings.TrimSpace(fi.ID),
		Title:     strings.TrimSpace(fi.Title),
		StartHour: start,
		Duration:  fi.Duration,
		Category:  ParseCategory(fi.Type),
	}
	if base.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidItem)
	}
	if base.Title == "" {
		base.Title = base.ID
	}
	if fi.DayIndex != nil {
		base.DayIndex = *fi.DayIndex
		return []Item{base}, nil
	}
	days, err := recurrence.ParseDays(fi.Days)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: %s: day_index or days is required", ErrInvalidItem, base.ID)
	}
	if len(days) == 1 {
		base.DayIndex = days[0]
		return []Item{base}, nil
	}
	out := make([]Item, 0, len(days))
	for _, day := range days {
		item := base
		item.DayIndex = day
		item.ID = base.ID + "-" + strings.ToLower(recurrence.DayCode(day))
		out = append(out, item)
	}
	return out, nil
}
