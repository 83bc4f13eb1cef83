package runlock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/showcase/internal/db"
	"github.com/kailas-cloud/showcase/internal/db/memory"
)

func TestAcquireRelease(t *testing.T) {
	s := New(memory.NewStore())
	ctx := context.Background()

	ok, err := s.Acquire(ctx, "alice", "run-1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}

	ok, err = s.Acquire(ctx, "alice", "run-2", time.Minute)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if ok {
		t.Fatal("second acquire for same caller should be rejected")
	}

	ok, err = s.Acquire(ctx, "bob", "run-3", time.Minute)
	if err != nil || !ok {
		t.Fatalf("other caller: ok=%v err=%v", ok, err)
	}

	if err := s.Release(ctx, "alice", "run-1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err = s.Acquire(ctx, "alice", "run-4", time.Minute)
	if err != nil || !ok {
		t.Fatalf("acquire after release: ok=%v err=%v", ok, err)
	}
}

func TestRelease_NotOwner(t *testing.T) {
	mem := memory.NewStore()
	s := New(mem)
	ctx := context.Background()

	if ok, _ := s.Acquire(ctx, "alice", "run-new", time.Minute); !ok {
		t.Fatal("acquire failed")
	}
	if err := s.Release(ctx, "alice", "run-old"); err != nil {
		t.Fatalf("release: %v", err)
	}

	owner, err := mem.Get(ctx, key("alice"))
	if err != nil {
		t.Fatalf("lock was dropped by non-owner: %v", err)
	}
	if string(owner) != "run-new" {
		t.Errorf("owner = %q", owner)
	}
}

func TestRelease_Missing(t *testing.T) {
	s := New(memory.NewStore())
	if err := s.Release(context.Background(), "nobody", "run-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type failingStore struct {
	err error
}

func (f *failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f *failingStore) SetNX(context.Context, string, []byte, time.Duration) (bool, error) {
	return false, f.err
}
func (f *failingStore) Del(context.Context, string) error { return f.err }

func TestBackendErrorsAreWrapped(t *testing.T) {
	backend := &db.Error{Op: db.OpSet, Err: errors.New("conn refused")}
	s := New(&failingStore{err: backend})
	ctx := context.Background()

	if _, err := s.Acquire(ctx, "alice", "run-1", time.Minute); !errors.Is(err, backend) {
		t.Errorf("Acquire: expected wrapped backend error, got %v", err)
	}
	if err := s.Release(ctx, "alice", "run-1"); !errors.Is(err, backend) {
		t.Errorf("Release: expected wrapped backend error, got %v", err)
	}
}

func TestKeyPrefix(t *testing.T) {
	if got := key("alice"); got != "showcase:run:alice" {
		t.Errorf("key = %q", got)
	}
}
