// Package state is the single UI state of the app. Every update returns a new
// State; the caller owns replacing its copy.
package state

import (
	"time"

	"questlog/internal/calendar"
	"questlog/internal/completion"
	"questlog/internal/task"
)

// Modal is the add/edit form. Editing is false for a new quest.
type Modal struct {
	Open    bool
	Editing bool
	Task    task.Task
}

func (m Modal) Title() string {
	if m.Editing {
		return "Edit Quest"
	}
	return "New Quest"
}

type State struct {
	Tasks       task.List
	View        calendar.Mode
	Current     time.Time
	SidebarOpen bool
	Modal       Modal
	Completion  completion.Tracker
}

func New(tasks task.List, view calendar.Mode, current time.Time, tracker completion.Tracker) State {
	if view == "" {
		view = calendar.Weekly
	}
	return State{
		Tasks:       tasks,
		View:        view,
		Current:     current,
		SidebarOpen: true,
		Completion:  tracker,
	}
}

// Navigate moves the current date by delta weeks or months, following the view.
func (s State) Navigate(delta int) State {
	s.Current = calendar.Shift(s.Current, s.View, delta)
	return s
}

func (s State) Prev() State { return s.Navigate(-1) }

func (s State) Next() State { return s.Navigate(1) }

// Today jumps back to now without changing the view.
func (s State) Today(now time.Time) State {
	s.Current = now
	return s
}

func (s State) WithView(mode calendar.Mode) State {
	s.View = mode
	return s
}

func (s State) ToggleSidebar() State {
	s.SidebarOpen = !s.SidebarOpen
	return s
}

func (s State) OpenNew() State {
	s.Modal = Modal{Open: true}
	return s
}

// OpenEdit opens the form on an existing quest. Quests that are being
// completed cannot be edited.
func (s State) OpenEdit(id string) (State, bool) {
	if s.Completion.Running(id) {
		return s, false
	}
	t, ok := s.Tasks.Find(id)
	if !ok {
		return s, false
	}
	s.Modal = Modal{Open: true, Editing: true, Task: t}
	return s, true
}

func (s State) CloseModal() State {
	s.Modal = Modal{}
	return s
}

// Save stores the form values and closes the form. While editing, the
// edited quest's ID wins over whatever the input carries. The bool is false
// when an edit targeted a quest that no longer exists.
func (s State) Save(input task.Task, newID func() string) (State, task.Task, bool) {
	if s.Modal.Open && s.Modal.Editing {
		input.ID = s.Modal.Task.ID
	}
	tasks, saved, ok := s.Tasks.Save(input, newID)
	s.Tasks = tasks
	s.Modal = Modal{}
	return s, saved, ok
}

// Complete starts the completion sequence of a quest and returns the steps
// to schedule.
func (s State) Complete(id string) (State, []completion.Step, bool) {
	if _, ok := s.Tasks.Find(id); !ok {
		return s, nil, false
	}
	tracker, steps, ok := s.Completion.Begin(id)
	if !ok {
		return s, nil, false
	}
	s.Completion = tracker
	return s, steps, true
}

// ApplyStep advances a completion sequence; the Removed step drops the quest.
func (s State) ApplyStep(step completion.Step) (State, bool) {
	exists := func(id string) bool {
		_, ok := s.Tasks.Find(id)
		return ok
	}
	tracker, ok := s.Completion.Apply(step, exists)
	s.Completion = tracker
	if !ok {
		return s, false
	}
	if step.Phase == completion.Removed {
		s.Tasks, _ = s.Tasks.Remove(step.TaskID)
	}
	return s, true
}

// Remove drops a quest directly and forgets any sequence running for it.
func (s State) Remove(id string) (State, bool) {
	tasks, ok := s.Tasks.Remove(id)
	if !ok {
		return s, false
	}
	s.Tasks = tasks
	s.Completion = s.Completion.Forget(id)
	return s, true
}

func (s State) Phase(id string) completion.Phase { return s.Completion.Phase(id) }

func (s State) Pending() int { return s.Tasks.Len() }
