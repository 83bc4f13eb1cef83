package staging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/showcase/internal/domain"
	"github.com/kailas-cloud/showcase/internal/domain/stage"
	logpkg "github.com/kailas-cloud/showcase/internal/logger"
)

const (
	// DefaultLockSlack is added to the planned run length when sizing the lock TTL.
	DefaultLockSlack = 5 * time.Second
	releaseTimeout   = 2 * time.Second
)

// Plan describes one staged run.
type Plan struct {
	Demo string
	// Caller keys the per-caller lock. Empty disables locking for this run.
	Caller string
	Steps  []string
	Delay  time.Duration
}

// Simulator drives staged runs: one onStep callback and one delay per step, strictly in order.
// A Simulator holds no per-run state and may serve many callers concurrently.
type Simulator struct {
	clock  Clock
	locks  Locker
	logger *zap.Logger
	newID  func() string
	slack  time.Duration
	runs   *prometheus.CounterVec
	delays *prometheus.HistogramVec
}

// New creates a simulator. locks may be nil, in which case runs are never serialized.
func New(clock Clock, locks Locker, logger *zap.Logger) *Simulator {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		clock:  clock,
		locks:  locks,
		logger: logger,
		newID:  uuid.NewString,
		slack:  DefaultLockSlack,
	}
}

// WithMetrics attaches run outcome and step delay metrics (labels: demo,outcome and demo).
func (s *Simulator) WithMetrics(runs *prometheus.CounterVec, delays *prometheus.HistogramVec) *Simulator {
	s.runs = runs
	s.delays = delays
	return s
}

// WithLockSlack sets how long a caller lock outlives the planned run length.
func (s *Simulator) WithLockSlack(d time.Duration) *Simulator {
	if d > 0 {
		s.slack = d
	}
	return s
}

// WithIDGenerator overrides run ID generation.
func (s *Simulator) WithIDGenerator(f func() string) *Simulator {
	s.newID = f
	return s
}

// Run executes plan. Cancellation of ctx is honoured before every step and during every delay;
// once ctx is done no further onStep call is made.
//
// Outcomes: nil (Completed), ErrRunInProgress (caller already has a run, nothing started),
// ErrRunCanceled (ctx canceled), ErrRunFailed (deadline exceeded or lock backend error).
func (s *Simulator) Run(ctx context.Context, plan Plan, onStep StepFunc) (stage.Snapshot, error) {
	runID := s.newID()
	run := stage.NewRun(runID, plan.Demo, plan.Steps)
	ctx, log := logpkg.WithRun(ctx, s.logger, plan.Demo, runID)

	delay := plan.Delay
	if delay < 0 {
		delay = 0
	}

	if plan.Caller != "" && s.locks != nil {
		ttl := time.Duration(len(plan.Steps))*delay + s.slack
		ok, err := s.locks.Acquire(ctx, plan.Caller, runID, ttl)
		if err != nil {
			run.Fail(s.clock.Now())
			s.incRuns(plan.Demo, string(stage.Failed))
			log.Error("Failed to acquire run lock", zap.Error(err))
			return run.Snapshot(), fmt.Errorf("%w: acquire lock: %w", domain.ErrRunFailed, err)
		}
		if !ok {
			s.incRuns(plan.Demo, "rejected")
			log.Info("Staged run rejected, caller has one in flight", zap.String("caller", plan.Caller))
			return run.Snapshot(), fmt.Errorf("caller %q: %w", plan.Caller, domain.ErrRunInProgress)
		}
		defer s.release(ctx, log, plan.Caller, runID)
	}

	log.Debug("Staged run started", zap.Int("steps", run.Total()), zap.Duration("delay", delay))

	for range plan.Steps {
		if err := ctx.Err(); err != nil {
			return s.abort(log, run, err)
		}

		step, err := run.Advance(s.clock.Now())
		if err != nil {
			return s.abort(log, run, err)
		}
		if onStep != nil {
			onStep(step.Index, step.Label)
		}

		started := s.clock.Now()
		select {
		case <-ctx.Done():
			return s.abort(log, run, ctx.Err())
		case <-s.clock.After(delay):
		}
		if s.delays != nil {
			s.delays.WithLabelValues(plan.Demo).Observe(s.clock.Now().Sub(started).Seconds())
		}
	}

	if err := run.Complete(s.clock.Now()); err != nil {
		return s.abort(log, run, err)
	}
	s.incRuns(plan.Demo, string(stage.Completed))
	log.Debug("Staged run completed")
	return run.Snapshot(), nil
}

// abort moves the run to its terminal state and builds the returned error.
func (s *Simulator) abort(log *zap.Logger, run *stage.Run, cause error) (stage.Snapshot, error) {
	now := s.clock.Now()
	index := run.Current()
	stepErr := domain.NewStepError(index, run.Label(index), cause)

	if errors.Is(cause, context.Canceled) {
		run.Cancel(now)
		s.incRuns(run.Demo(), string(stage.Canceled))
		log.Info("Staged run canceled", zap.Int("step", index))
		return run.Snapshot(), fmt.Errorf("%w: %w", domain.ErrRunCanceled, stepErr)
	}

	run.Fail(now)
	s.incRuns(run.Demo(), string(stage.Failed))
	log.Warn("Staged run failed", zap.Int("step", index), zap.Error(cause))
	return run.Snapshot(), fmt.Errorf("%w: %w", domain.ErrRunFailed, stepErr)
}

// release drops the caller lock on a context that survives the run's cancellation.
func (s *Simulator) release(ctx context.Context, log *zap.Logger, caller, runID string) {
	relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := s.locks.Release(relCtx, caller, runID); err != nil {
		log.Warn("Failed to release run lock", zap.String("caller", caller), zap.Error(err))
	}
}

func (s *Simulator) incRuns(demo, outcome string) {
	if s.runs != nil {
		s.runs.WithLabelValues(demo, outcome).Inc()
	}
}

// RunStaged runs steps on the wall clock without locking or metrics.
func RunStaged(ctx context.Context, steps []string, onStep StepFunc, delay time.Duration) error {
	_, err := New(SystemClock{}, nil, nil).Run(ctx, Plan{Steps: steps, Delay: delay}, onStep)
	return err
}
