package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	ViewWeekly  = "weekly"
	ViewMonthly = "monthly"
)

type Config struct {
	Timezone        string `json:"timezone"`
	DefaultView     string `json:"default_view"`
	GridStartHour   int    `json:"grid_start_hour"`
	GridEndHour     int    `json:"grid_end_hour"`
	SlotMinutes     int    `json:"slot_minutes"`
	SlotHeight      int    `json:"slot_height"`
	RowsPerHour     int    `json:"rows_per_hour"`
	CompleteDelayMS int    `json:"complete_delay_ms"`
	RemoveDelayMS   int    `json:"remove_delay_ms"`
	ScheduleFile    string `json:"schedule_file"`
	SkipSeed        bool   `json:"skip_seed"`
	LogLevel        string `json:"log_level"`
	LogFile         string `json:"log_file"`
}

func Load(path string) (*Config, error) {
	// #nosec G304 -- path is controlled by the app config location
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	normalize(&cfg)
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func Default() *Config {
	return &Config{
		Timezone:        "local",
		DefaultView:     ViewWeekly,
		GridStartHour:   6,
		GridEndHour:     24,
		SlotMinutes:     15,
		SlotHeight:      30,
		RowsPerHour:     2,
		CompleteDelayMS: 400,
		RemoveDelayMS:   1800,
		LogLevel:        "info",
	}
}

func LoadOrCreate(path string) (*Config, error) {
	// #nosec G304 -- path is controlled by the app config location
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	normalize(&cfg)
	if err := Save(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PixelsPerHour is the slot height times the number of slots in an hour.
func (c *Config) PixelsPerHour() float64 {
	return float64(c.SlotHeight * (60 / c.SlotMinutes))
}

func (c *Config) CompleteDelay() time.Duration {
	return time.Duration(c.CompleteDelayMS) * time.Millisecond
}

func (c *Config) RemoveDelay() time.Duration {
	return time.Duration(c.RemoveDelayMS) * time.Millisecond
}

func normalize(cfg *Config) {
	def := Default()
	if cfg.Timezone == "" {
		cfg.Timezone = def.Timezone
	}
	switch strings.ToLower(strings.TrimSpace(cfg.DefaultView)) {
	case "month", ViewMonthly:
		cfg.DefaultView = ViewMonthly
	default:
		cfg.DefaultView = ViewWeekly
	}
	if cfg.GridStartHour < 0 || cfg.GridStartHour > 23 {
		cfg.GridStartHour = def.GridStartHour
	}
	if cfg.GridEndHour <= cfg.GridStartHour || cfg.GridEndHour > 24 {
		cfg.GridEndHour = def.GridEndHour
		if cfg.GridEndHour <= cfg.GridStartHour {
			cfg.GridStartHour = def.GridStartHour
		}
	}
	if cfg.SlotMinutes <= 0 || 60%cfg.SlotMinutes != 0 {
		cfg.SlotMinutes = def.SlotMinutes
	}
	if cfg.SlotHeight <= 0 {
		cfg.SlotHeight = def.SlotHeight
	}
	if cfg.RowsPerHour <= 0 || cfg.RowsPerHour > 60/cfg.SlotMinutes || 60%cfg.RowsPerHour != 0 {
		cfg.RowsPerHour = def.RowsPerHour
	}
	if cfg.CompleteDelayMS <= 0 {
		cfg.CompleteDelayMS = def.CompleteDelayMS
	}
	if cfg.RemoveDelayMS <= cfg.CompleteDelayMS {
		cfg.RemoveDelayMS = cfg.CompleteDelayMS + def.RemoveDelayMS - def.CompleteDelayMS
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	cfg.ScheduleFile = strings.TrimSpace(cfg.ScheduleFile)
}
