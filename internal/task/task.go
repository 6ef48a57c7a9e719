// Package task is the in-memory list of active quests.
package task

import (
	"strings"

	"github.com/google/uuid"
)

// Task is one active quest. DueDate is YYYY-MM-DD and DueTime is HH:MM.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	DueDate     string `json:"due_date"`
	DueTime     string `json:"due_time"`
	Description string `json:"description,omitempty"`
}

// List keeps insertion order. Every operation returns a new List and leaves
// the receiver untouched.
type List []Task

// NewID returns a fresh random task ID.
func NewID() string {
	return uuid.NewString()
}

// Items returns a copy of the tasks in insertion order.
func (l List) Items() []Task {
	out := make([]Task, len(l))
	copy(out, l)
	return out
}

func (l List) Len() int { return len(l) }

func (l List) Find(id string) (Task, bool) {
	for _, t := range l {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Add appends t. When t has no ID one is generated with newID (NewID when nil).
func (l List) Add(t Task, newID func() string) (List, Task) {
	if strings.TrimSpace(t.ID) == "" {
		if newID == nil {
			newID = NewID
		}
		t.ID = newID()
	}
	out := make(List, 0, len(l)+1)
	out = append(out, l...)
	out = append(out, t)
	return out, t
}

// Update replaces the task with the same ID in place. An unknown ID leaves
// the list unchanged and reports false.
func (l List) Update(t Task) (List, bool) {
	for i := range l {
		if l[i].ID != t.ID {
			continue
		}
		out := make(List, len(l))
		copy(out, l)
		out[i] = t
		return out, true
	}
	return l, false
}

// Remove drops the task with id. An unknown ID reports false.
func (l List) Remove(id string) (List, bool) {
	for i := range l {
		if l[i].ID != id {
			continue
		}
		out := make(List, 0, len(l)-1)
		out = append(out, l[:i]...)
		out = append(out, l[i+1:]...)
		return out, true
	}
	return l, false
}

// Save is the form submit: with an ID it updates, without one it adds.
// The returned bool is false only for an update of an unknown ID.
func (l List) Save(t Task, newID func() string) (List, Task, bool) {
	if strings.TrimSpace(t.ID) == "" {
		out, added := l.Add(t, newID)
		return out, added, true
	}
	out, ok := l.Update(t)
	return out, t, ok
}

// Seed is the list the app starts with.
func Seed() List {
	return List{
		{ID: "1", Title: "Calculus III PSet", DueDate: "2025-01-12", DueTime: "14:30", Description: "Complete problems 1-15 in Chapter 4, focusing on partial derivatives."},
		{ID: "2", Title: "Design Sys Review", DueDate: "2025-01-13", DueTime: "09:45", Description: "Audit the button components and color palette for accessibility."},
		{ID: "3", Title: "Lab Report Writeup", DueDate: "2025-01-15", DueTime: "16:00", Description: "Draft the abstract and methodology sections for the Physics lab."},
		{ID: "4", Title: "Email Professor", DueDate: "2025-01-16", DueTime: "11:15", Description: "Request extension for the midterm project due to schedule conflict."},
		{ID: "5", Title: "Prepare Presentation", DueDate: "2025-01-18", DueTime: "13:00", Description: "Create slides for the group project and practice the speech."},
	}
}
