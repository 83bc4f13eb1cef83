package stage

import (
	"testing"
	"time"
)

func TestRun_HappyPath(t *testing.T) {
	now := time.Unix(1000, 0)
	r := NewRun("run-1", "rag", []string{"a", "b"})

	if r.State() != Idle || r.Current() != -1 {
		t.Fatalf("new run: state=%s current=%d", r.State(), r.Current())
	}

	step, err := r.Advance(now)
	if err != nil {
		t.Fatalf("advance 0: %v", err)
	}
	if step.Index != 0 || step.Label != "a" {
		t.Errorf("step = %+v", step)
	}
	if !r.StartedAt().Equal(now) {
		t.Errorf("StartedAt = %v", r.StartedAt())
	}

	if err := r.Complete(now); err == nil {
		t.Fatal("complete before last step should fail")
	}

	step, err = r.Advance(now.Add(time.Second))
	if err != nil {
		t.Fatalf("advance 1: %v", err)
	}
	if step.Index != 1 || step.Label != "b" {
		t.Errorf("step = %+v", step)
	}

	if _, err := r.Advance(now); err == nil {
		t.Fatal("advance past last step should fail")
	}

	if err := r.Complete(now.Add(2 * time.Second)); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if r.State() != Completed {
		t.Errorf("state = %s, want completed", r.State())
	}

	snap := r.Snapshot()
	if snap.Total != 2 || snap.Current != 1 || snap.State != Completed || snap.Demo != "rag" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestRun_EmptyStepsCompletesFromIdle(t *testing.T) {
	r := NewRun("run-1", "rag", nil)
	if err := r.Complete(time.Now()); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if r.State() != Completed {
		t.Errorf("state = %s", r.State())
	}
}

func TestRun_TerminalStatesAreSticky(t *testing.T) {
	r := NewRun("run-1", "rag", []string{"a"})
	if _, err := r.Advance(time.Now()); err != nil {
		t.Fatalf("advance: %v", err)
	}
	r.Cancel(time.Now())
	r.Fail(time.Now())

	if r.State() != Canceled {
		t.Errorf("state = %s, want canceled", r.State())
	}
	if _, err := r.Advance(time.Now()); err == nil {
		t.Error("advance after cancel should fail")
	}
}

func TestRun_StepsAreCopied(t *testing.T) {
	steps := []string{"a"}
	r := NewRun("run-1", "rag", steps)
	steps[0] = "mutated"

	step, err := r.Advance(time.Now())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if step.Label != "a" {
		t.Errorf("label = %q, want a", step.Label)
	}
}

func TestState_Terminal(t *testing.T) {
	tests := []struct {
		s    State
		want bool
	}{
		{Idle, false},
		{Running, false},
		{Completed, true},
		{Failed, true},
		{Canceled, true},
	}
	for _, tc := range tests {
		if got := tc.s.Terminal(); got != tc.want {
			t.Errorf("%s.Terminal() = %v, want %v", tc.s, got, tc.want)
		}
	}
}

func TestRun_Label(t *testing.T) {
	r := NewRun("run-1", "rag", []string{"a", "b"})
	if got := r.Label(1); got != "b" {
		t.Errorf("Label(1) = %q, want b", got)
	}
	if got := r.Label(-1); got != "" {
		t.Errorf("Label(-1) = %q, want empty", got)
	}
	if got := r.Label(2); got != "" {
		t.Errorf("Label(2) = %q, want empty", got)
	}
}
