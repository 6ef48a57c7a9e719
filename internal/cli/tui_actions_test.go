package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"questlog/internal/calendar"
	"questlog/internal/completion"
	"questlog/internal/config"
	"questlog/internal/state"
	"questlog/internal/task"
)

func TestTUIDeleteDuringCompletion(t *testing.T) {
	m := newTestModel(t)
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = press(m, "d")
	if m.st.Pending() != 4 || m.st.Completion.Running("1") {
		t.Fatalf("expected quest 1 deleted and its sequence forgotten")
	}
	if !strings.Contains(m.status, "Calculus III PSet deleted") {
		t.Fatalf("unexpected status %q", m.status)
	}
	m = runSteps(t, m, cmd)
	if m.st.Pending() != 4 {
		t.Fatalf("expected late steps to remove nothing, got %d quests", m.st.Pending())
	}
	if !strings.Contains(m.status, "deleted") {
		t.Fatalf("expected late steps to leave the status alone, got %q", m.status)
	}
}

func TestTUIEditMissingQuest(t *testing.T) {
	m := newTestModel(t)
	// Drop the quest behind the sidebar's back so the list is stale.
	m.st, _ = m.st.Remove("1")
	m = press(m, "enter")
	if m.st.Modal.Open {
		t.Fatalf("expected no modal for a missing quest")
	}
	if m.status != "Quest no longer exists" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if quest, ok := m.selectedQuest(); !ok || quest.ID == "1" {
		t.Fatalf("expected sidebar refreshed past the missing quest")
	}
}

func TestTUIExportWeek(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)
	m := newTestModel(t)
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	if cmd == nil {
		t.Fatalf("expected an export command")
	}
	m, _ = send(m, cmd())
	want := filepath.Join(stateHome, "questlog", "week-2025-01-12.ics")
	if !strings.Contains(m.status, want) {
		t.Fatalf("unexpected status %q", m.status)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "BEGIN:VCALENDAR") {
		t.Fatalf("unexpected export:\n%s", data)
	}
}

func TestTUIDayDetailsNextBlock(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "tab")
	if got := m.renderDayDetails(200); !strings.Contains(got, "next MATH 232 Wed 11:00") {
		t.Fatalf("expected next block in details, got %q", got)
	}
}

func TestWeekRowsMatchLabelsForOddRowsPerHour(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"slot_minutes":5,"rows_per_hour":7}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	app := testApp()
	app.Config = cfg
	tracker := completion.NewTracker(cfg.CompleteDelay(), cfg.RemoveDelay())
	m := newTUIModel(app, state.New(task.Seed(), calendar.Weekly, testNow, tracker))
	rows, _ := m.renderWeekRows(140)
	lines := strings.Split(rows, "\n")
	params, _ := m.weekParams(140)
	if float64(len(lines)) != params.GridHeight() {
		t.Fatalf("expected %v rows, got %d", params.GridHeight(), len(lines))
	}
	for _, line := range lines {
		if strings.Contains(line, "STAT 414") {
			if !strings.HasPrefix(strings.TrimSpace(line), "9:00") {
				t.Fatalf("expected STAT 414 on the 9:00 row, got %q", line)
			}
			return
		}
	}
	t.Fatalf("no STAT 414 row")
}
