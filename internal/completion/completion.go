// Package completion drives the checked -> completed -> removed sequence a
// quest card goes through once the user confirms it.
package completion

import "time"

type Phase int

const (
	Idle Phase = iota
	Checked
	Completed
	Removed
)

func (p Phase) String() string {
	switch p {
	case Checked:
		return "checked"
	case Completed:
		return "completed"
	case Removed:
		return "removed"
	default:
		return "idle"
	}
}

// Step is a phase change to apply after Delay. Token ties it to the
// sequence that scheduled it.
type Step struct {
	TaskID string
	Phase  Phase
	Delay  time.Duration
	Token  uint64
}

type entry struct {
	phase Phase
	token uint64
}

// Tracker holds the running sequences. It is a value: methods that change
// it return the new Tracker.
type Tracker struct {
	CompleteAfter time.Duration
	RemoveAfter   time.Duration

	seq     uint64
	running map[string]entry
}

func NewTracker(completeAfter, removeAfter time.Duration) Tracker {
	return Tracker{CompleteAfter: completeAfter, RemoveAfter: removeAfter}
}

// Phase returns Idle for tasks with no running sequence.
func (t Tracker) Phase(id string) Phase {
	if e, ok := t.running[id]; ok {
		return e.phase
	}
	return Idle
}

// Running reports whether a sequence has started and not yet finished.
func (t Tracker) Running(id string) bool {
	_, ok := t.running[id]
	return ok
}

func (t Tracker) Len() int { return len(t.running) }

// Begin moves id to Checked and returns the two steps the caller must
// schedule. A task that is already running is left alone.
func (t Tracker) Begin(id string) (Tracker, []Step, bool) {
	if t.Running(id) {
		return t, nil, false
	}
	next := t.clone()
	next.seq++
	next.running[id] = entry{phase: Checked, token: next.seq}
	steps := []Step{
		{TaskID: id, Phase: Completed, Delay: t.CompleteAfter, Token: next.seq},
		{TaskID: id, Phase: Removed, Delay: t.RemoveAfter, Token: next.seq},
	}
	return next, steps, true
}

// Apply advances a sequence. Steps whose sequence was forgotten, whose token
// is stale, or whose task no longer exists are dropped and report false.
// A Removed step ends the sequence; the caller then drops the task.
func (t Tracker) Apply(step Step, exists func(string) bool) (Tracker, bool) {
	e, ok := t.running[step.TaskID]
	if !ok || e.token != step.Token {
		return t, false
	}
	if exists != nil && !exists(step.TaskID) {
		return t.Forget(step.TaskID), false
	}
	if step.Phase <= e.phase {
		return t, false
	}
	next := t.clone()
	if step.Phase == Removed {
		delete(next.running, step.TaskID)
		return next, true
	}
	next.running[step.TaskID] = entry{phase: step.Phase, token: e.token}
	return next, true
}

// Forget drops a sequence so its pending steps become no-ops.
func (t Tracker) Forget(id string) Tracker {
	if !t.Running(id) {
		return t
	}
	next := t.clone()
	delete(next.running, id)
	return next
}

func (t Tracker) clone() Tracker {
	next := t
	next.running = make(map[string]entry, len(t.running)+1)
	for k, v := range t.running {
		next.running[k] = v
	}
	return next
}
