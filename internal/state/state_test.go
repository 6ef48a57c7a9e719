package state

import (
	"testing"
	"time"

	"questlog/internal/calendar"
	"questlog/internal/completion"
	"questlog/internal/task"
)

func newState() State {
	now := time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC)
	return New(task.Seed(), calendar.Weekly, now, completion.NewTracker(400*time.Millisecond, 1800*time.Millisecond))
}

func TestNavigate(t *testing.T) {
	s := newState()
	next := s.Next()
	if !next.Current.Equal(time.Date(2025, 2, 7, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected weekly next %s", next.Current)
	}
	if !s.Current.Equal(time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("navigation must not mutate the receiver")
	}
	month := s.WithView(calendar.Monthly).Next()
	if !month.Current.Equal(time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected clamped month move, got %s", month.Current)
	}
	back := month.Prev()
	if back.Current.Month() != time.January || back.Current.Day() != 28 {
		t.Fatalf("unexpected monthly prev %s", back.Current)
	}
}

func TestToggleSidebar(t *testing.T) {
	s := newState()
	if !s.SidebarOpen {
		t.Fatalf("expected sidebar open by default")
	}
	if s.ToggleSidebar().SidebarOpen {
		t.Fatalf("expected sidebar closed after toggle")
	}
}

func TestSaveNewAppends(t *testing.T) {
	s := newState().OpenNew()
	if !s.Modal.Open || s.Modal.Title() != "New Quest" {
		t.Fatalf("unexpected modal %#v", s.Modal)
	}
	next, saved, ok := s.Save(task.Task{Title: "Read", DueDate: "2025-02-01", DueTime: "10:00"}, func() string { return "x" })
	if !ok || saved.ID != "x" {
		t.Fatalf("expected save to add task x, got %#v", saved)
	}
	if next.Pending() != 6 || next.Modal.Open {
		t.Fatalf("expected 6 tasks and closed modal, got %d %v", next.Pending(), next.Modal.Open)
	}
}

func TestSaveEditKeepsID(t *testing.T) {
	s, ok := newState().OpenEdit("2")
	if !ok || s.Modal.Title() != "Edit Quest" {
		t.Fatalf("expected edit modal")
	}
	next, saved, ok := s.Save(task.Task{Title: "Design Review v2", DueDate: "2025-01-13", DueTime: "10:00"}, nil)
	if !ok || saved.ID != "2" {
		t.Fatalf("expected update of task 2, got %#v", saved)
	}
	if next.Pending() != 5 || next.Tasks[1].Title != "Design Review v2" {
		t.Fatalf("expected in-place update, got %#v", next.Tasks.Items())
	}
}

func TestCompleteRemovesExactlyOne(t *testing.T) {
	s := newState()
	s, steps, ok := s.Complete("3")
	if !ok || s.Phase("3") != completion.Checked {
		t.Fatalf("expected task 3 checked")
	}
	if _, ok := s.OpenEdit("3"); ok {
		t.Fatalf("expected edit to be blocked while completing")
	}
	if _, _, ok := s.Complete("3"); ok {
		t.Fatalf("expected second completion to be ignored")
	}
	for _, step := range steps {
		var applied bool
		s, applied = s.ApplyStep(step)
		if !applied {
			t.Fatalf("expected step %s to apply", step.Phase)
		}
	}
	if s.Pending() != 4 {
		t.Fatalf("expected 4 tasks, got %d", s.Pending())
	}
	if _, ok := s.Tasks.Find("3"); ok {
		t.Fatalf("expected task 3 removed")
	}
	if s.Phase("3") != completion.Idle {
		t.Fatalf("expected finished sequence to be idle")
	}
}

func TestStepAfterDirectRemoveIsNoop(t *testing.T) {
	s := newState()
	s, steps, _ := s.Complete("1")
	s, ok := s.Remove("1")
	if !ok {
		t.Fatalf("expected remove to succeed")
	}
	for _, step := range steps {
		if _, applied := s.ApplyStep(step); applied {
			t.Fatalf("expected step %s to be a no-op", step.Phase)
		}
	}
	if s.Pending() != 4 {
		t.Fatalf("expected 4 tasks, got %d", s.Pending())
	}
}

func TestCompleteUnknown(t *testing.T) {
	if _, _, ok := newState().Complete("nope"); ok {
		t.Fatalf("expected unknown task to be ignored")
	}
}
