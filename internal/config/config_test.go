package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questlog", "config.json")
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate error: %v", err)
	}
	if cfg.GridStartHour != 6 || cfg.GridEndHour != 24 {
		t.Fatalf("unexpected grid hours: %d-%d", cfg.GridStartHour, cfg.GridEndHour)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	if got := cfg.PixelsPerHour(); got != 120 {
		t.Fatalf("expected 120 pixels per hour, got %v", got)
	}
}

func TestLoadNormalizesInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{"default_view":"Month","grid_start_hour":20,"grid_end_hour":10,"slot_minutes":7,"remove_delay_ms":100}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.DefaultView != ViewMonthly {
		t.Fatalf("expected monthly view, got %q", cfg.DefaultView)
	}
	if cfg.GridStartHour != 20 || cfg.GridEndHour != 24 {
		t.Fatalf("expected end hour reset to 24, got %d-%d", cfg.GridStartHour, cfg.GridEndHour)
	}
	if cfg.SlotMinutes != 15 {
		t.Fatalf("expected slot minutes reset to 15, got %d", cfg.SlotMinutes)
	}
	if cfg.RemoveDelayMS <= cfg.CompleteDelayMS {
		t.Fatalf("remove delay must follow complete delay: %d <= %d", cfg.RemoveDelayMS, cfg.CompleteDelayMS)
	}
}

func TestLoadResetsRowsThatDoNotDivideAnHour(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"slot_minutes":5,"rows_per_hour":7}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.SlotMinutes != 5 {
		t.Fatalf("expected slot minutes kept at 5, got %d", cfg.SlotMinutes)
	}
	if cfg.RowsPerHour != Default().RowsPerHour {
		t.Fatalf("expected rows per hour reset to %d, got %d", Default().RowsPerHour, cfg.RowsPerHour)
	}
}
