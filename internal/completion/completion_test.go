package completion

import (
	"testing"
	"time"
)

func always(string) bool { return true }

func TestSequence(t *testing.T) {
	tr := NewTracker(400*time.Millisecond, 1800*time.Millisecond)
	tr, steps, ok := tr.Begin("1")
	if !ok {
		t.Fatalf("expected sequence to start")
	}
	if tr.Phase("1") != Checked {
		t.Fatalf("expected checked immediately, got %s", tr.Phase("1"))
	}
	if len(steps) != 2 || steps[0].Phase != Completed || steps[1].Phase != Removed {
		t.Fatalf("unexpected steps %#v", steps)
	}
	if steps[0].Delay != 400*time.Millisecond || steps[1].Delay != 1800*time.Millisecond {
		t.Fatalf("unexpected delays %#v", steps)
	}

	tr, ok = tr.Apply(steps[0], always)
	if !ok || tr.Phase("1") != Completed {
		t.Fatalf("expected completed, got %s", tr.Phase("1"))
	}
	tr, ok = tr.Apply(steps[1], always)
	if !ok {
		t.Fatalf("expected removal step to apply")
	}
	if tr.Running("1") || tr.Phase("1") != Idle {
		t.Fatalf("expected sequence to end")
	}
}

func TestBeginTwiceIsIgnored(t *testing.T) {
	tr := NewTracker(time.Millisecond, 2*time.Millisecond)
	tr, _, _ = tr.Begin("1")
	next, steps, ok := tr.Begin("1")
	if ok || steps != nil {
		t.Fatalf("expected second begin to be ignored")
	}
	if next.Len() != 1 {
		t.Fatalf("expected one running sequence, got %d", next.Len())
	}
}

func TestStepForRemovedTaskIsNoop(t *testing.T) {
	tr := NewTracker(time.Millisecond, 2*time.Millisecond)
	tr, steps, _ := tr.Begin("1")
	tr, ok := tr.Apply(steps[0], func(string) bool { return false })
	if ok {
		t.Fatalf("expected step for missing task to be dropped")
	}
	if tr.Running("1") {
		t.Fatalf("expected sequence to be forgotten")
	}
	if _, ok := tr.Apply(steps[1], always); ok {
		t.Fatalf("expected later step to be a no-op")
	}
}

func TestStaleTokenIsNoop(t *testing.T) {
	tr := NewTracker(time.Millisecond, 2*time.Millisecond)
	tr, first, _ := tr.Begin("1")
	tr = tr.Forget("1")
	tr, second, ok := tr.Begin("1")
	if !ok {
		t.Fatalf("expected restart after forget")
	}
	if _, ok := tr.Apply(first[0], always); ok {
		t.Fatalf("expected stale token to be ignored")
	}
	if _, ok := tr.Apply(second[0], always); !ok {
		t.Fatalf("expected fresh token to apply")
	}
}

func TestTrackerIsValue(t *testing.T) {
	base := NewTracker(time.Millisecond, 2*time.Millisecond)
	started, _, _ := base.Begin("1")
	if base.Running("1") {
		t.Fatalf("Begin must not mutate the receiver")
	}
	if !started.Running("1") {
		t.Fatalf("expected returned tracker to run")
	}
}
