package runlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/showcase/internal/db"
	"github.com/kailas-cloud/showcase/internal/domain"
)

var keyPrefix = domain.KeyPrefix + "run:"

// store is the consumer interface for run locks (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
}

// Store implements staging.Locker on top of a key-value store (SET NX + DEL).
// One key per caller; the value is the run ID that holds it.
type Store struct {
	store store
}

// New creates a run lock store.
func New(s store) *Store {
	return &Store{store: s}
}

// Acquire takes the caller's lock for runID. Reports false when another run holds it.
// The TTL bounds how long a crashed run can block its caller.
func (s *Store) Acquire(ctx context.Context, caller, runID string, ttl time.Duration) (bool, error) {
	ok, err := s.store.SetNX(ctx, key(caller), []byte(runID), ttl)
	if err != nil {
		return false, fmt.Errorf("run lock SETNX %s: %w", caller, err)
	}
	return ok, nil
}

// Release drops the caller's lock if runID still owns it.
func (s *Store) Release(ctx context.Context, caller, runID string) error {
	k := key(caller)
	owner, err := s.store.Get(ctx, k)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("run lock GET %s: %w", caller, err)
	}
	if string(owner) != runID {
		// Expired and re-acquired by a newer run.
		return nil
	}
	if err := s.store.Del(ctx, k); err != nil {
		return fmt.Errorf("run lock DEL %s: %w", caller, err)
	}
	return nil
}

func key(caller string) string {
	return keyPrefix + caller
}
