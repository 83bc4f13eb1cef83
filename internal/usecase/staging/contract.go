package staging

import (
	"context"
	"time"
)

// Clock is the time source the simulator suspends on. Tests inject a fake.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// Locker serializes staged runs per caller.
type Locker interface {
	Acquire(ctx context.Context, caller, runID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, caller, runID string) error
}

// StepFunc is invoked synchronously before each step starts.
type StepFunc func(index int, label string)
