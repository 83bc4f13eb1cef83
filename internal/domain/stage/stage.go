package stage

import (
	"fmt"
	"time"
)

// State is the lifecycle state of a staged run.
type State string

const (
	// Idle is the state before the first step starts.
	Idle State = "idle"
	// Running means a step is active.
	Running State = "running"
	// Completed means the last step's delay elapsed.
	Completed State = "completed"
	// Failed means the run hit a deadline or a backend error.
	Failed State = "failed"
	// Canceled means the caller went away mid-run.
	Canceled State = "canceled"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Completed || s == Failed || s == Canceled
}

// Step is one labelled stage of a run.
type Step struct {
	Index int
	Label string
}

// Run is the state machine of a single staged run.
// It is owned by exactly one in-flight invocation and is not safe for concurrent use.
type Run struct {
	id         string
	demo       string
	steps      []string
	state      State
	current    int
	startedAt  time.Time
	finishedAt time.Time
}

// NewRun creates an idle run over the given step labels.
func NewRun(id, demo string, steps []string) *Run {
	labels := make([]string, len(steps))
	copy(labels, steps)
	return &Run{id: id, demo: demo, steps: labels, state: Idle, current: -1}
}

// ID returns the run identifier.
func (r *Run) ID() string { return r.id }

// Demo returns the demo the run belongs to.
func (r *Run) Demo() string { return r.demo }

// State returns the current state.
func (r *Run) State() State { return r.state }

// Total returns the number of steps.
func (r *Run) Total() int { return len(r.steps) }

// Current returns the active step index, -1 before the first step.
func (r *Run) Current() int { return r.current }

// Label returns the label of step i, or "" when out of range.
func (r *Run) Label(i int) string {
	if i < 0 || i >= len(r.steps) {
		return ""
	}
	return r.steps[i]
}

// StartedAt returns when the run left Idle.
func (r *Run) StartedAt() time.Time { return r.startedAt }

// FinishedAt returns when the run reached a terminal state.
func (r *Run) FinishedAt() time.Time { return r.finishedAt }

// Advance moves to the next step and returns it.
func (r *Run) Advance(now time.Time) (Step, error) {
	switch r.state {
	case Idle:
		r.startedAt = now
	case Running:
	default:
		return Step{}, fmt.Errorf("advance: run %s is %s", r.id, r.state)
	}
	if r.current+1 >= len(r.steps) {
		return Step{}, fmt.Errorf("advance: run %s has no step after %d", r.id, r.current)
	}
	r.current++
	r.state = Running
	return Step{Index: r.current, Label: r.steps[r.current]}, nil
}

// Complete marks the run finished. Only valid after the last step.
func (r *Run) Complete(now time.Time) error {
	if r.state == Idle && len(r.steps) == 0 {
		r.startedAt = now
	} else if r.state != Running || r.current != len(r.steps)-1 {
		return fmt.Errorf("complete: run %s is %s at step %d/%d", r.id, r.state, r.current, len(r.steps))
	}
	r.state = Completed
	r.finishedAt = now
	return nil
}

// Fail moves a non-terminal run to Failed.
func (r *Run) Fail(now time.Time) {
	r.finish(Failed, now)
}

// Cancel moves a non-terminal run to Canceled.
func (r *Run) Cancel(now time.Time) {
	r.finish(Canceled, now)
}

func (r *Run) finish(s State, now time.Time) {
	if r.state.Terminal() {
		return
	}
	r.state = s
	r.finishedAt = now
}

// Snapshot is a read-only copy of a run, safe to hand to other goroutines.
type Snapshot struct {
	ID         string
	Demo       string
	State      State
	Current    int
	Total      int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Snapshot returns the current run state as a value.
func (r *Run) Snapshot() Snapshot {
	return Snapshot{
		ID:         r.id,
		Demo:       r.demo,
		State:      r.state,
		Current:    r.current,
		Total:      len(r.steps),
		StartedAt:  r.startedAt,
		FinishedAt: r.finishedAt,
	}
}
