package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/showcase/internal/domain"
	"github.com/kailas-cloud/showcase/internal/domain/stage"
	"github.com/kailas-cloud/showcase/internal/repository/catalog"
	"github.com/kailas-cloud/showcase/internal/usecase/staging"
)

// --- Mocks ---

type mockRunner struct {
	err   error
	plans []staging.Plan
}

func (m *mockRunner) Run(_ context.Context, plan staging.Plan, onStep staging.StepFunc) (stage.Snapshot, error) {
	m.plans = append(m.plans, plan)
	if m.err != nil {
		return stage.Snapshot{State: stage.Canceled}, m.err
	}
	for i, l := range plan.Steps {
		if onStep != nil {
			onStep(i, l)
		}
	}
	return stage.Snapshot{State: stage.Completed, Total: len(plan.Steps), Current: len(plan.Steps) - 1}, nil
}

// --- Tests ---

func TestAsk_RemoteWorkQuestion(t *testing.T) {
	runner := &mockRunner{}
	svc := New(catalog.Default(), runner, Config{})

	var labels []string
	ans, err := svc.Ask(context.Background(), "alice", "remote work policy equipment stipend",
		func(_ int, l string) { labels = append(labels, l) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ans.Fallback {
		t.Fatal("expected a real answer")
	}
	if len(ans.Sources) != 3 {
		t.Fatalf("sources = %d, want 3", len(ans.Sources))
	}
	if ans.Sources[0].Record().ID() != "doc-1" || ans.Sources[0].Score() != 1 {
		t.Errorf("top = %s (%f), want doc-1 (1.0)", ans.Sources[0].Record().ID(), ans.Sources[0].Score())
	}
	if !strings.HasPrefix(ans.Response, `According to "Employee Remote Work Policy"`) {
		t.Errorf("response = %q", ans.Response)
	}
	if !strings.Contains(ans.Response, "1. Employee Remote Work Policy (HR, 100% relevant)") {
		t.Errorf("response lacks top citation: %q", ans.Response)
	}
	if !strings.Contains(ans.Response, "20% relevant") {
		t.Errorf("response lacks tie citation: %q", ans.Response)
	}
	if ans.Run.State != stage.Completed {
		t.Errorf("run state = %s", ans.Run.State)
	}

	if len(labels) != 4 || labels[0] != "Analyzing query" || labels[3] != "Generating response" {
		t.Errorf("labels = %v", labels)
	}
	plan := runner.plans[0]
	if plan.Demo != Demo || plan.Caller != "alice" {
		t.Errorf("plan = %+v", plan)
	}
}

func TestAsk_NoMatchFallsBack(t *testing.T) {
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_fallback_total"})
	svc := New(catalog.Default(), &mockRunner{}, Config{}).WithMetrics(nil, fallbacks)

	ans, err := svc.Ask(context.Background(), "", "quantum blockchain xylophone", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ans.Fallback || ans.Response != FallbackResponse {
		t.Errorf("answer = %+v, want fallback", ans)
	}
	if len(ans.Sources) != 0 {
		t.Errorf("sources = %d, want 0", len(ans.Sources))
	}
	if v := testutil.ToFloat64(fallbacks); v != 1 {
		t.Errorf("fallbacks = %v, want 1", v)
	}
}

func TestAsk_EmptyQueryFallsBack(t *testing.T) {
	ans, err := New(catalog.Default(), &mockRunner{}, Config{}).Ask(context.Background(), "", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ans.Fallback {
		t.Error("expected fallback for empty query")
	}
}

func TestAsk_QueryTooLong(t *testing.T) {
	runner := &mockRunner{}
	_, err := New(catalog.Default(), runner, Config{}).
		Ask(context.Background(), "", strings.Repeat("a", MaxQueryBytes+1), nil)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
	if len(runner.plans) != 0 {
		t.Error("run must not start for an invalid query")
	}
}

func TestAsk_RunErrorPropagates(t *testing.T) {
	svc := New(catalog.Default(), &mockRunner{err: domain.ErrRunInProgress}, Config{})
	ans, err := svc.Ask(context.Background(), "alice", "remote work", nil)
	if !errors.Is(err, domain.ErrRunInProgress) {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}
	if len(ans.Sources) != 0 {
		t.Error("nothing is ranked when the run does not complete")
	}
}

func TestAsk_CustomConfig(t *testing.T) {
	runner := &mockRunner{}
	svc := New(catalog.Default(), runner, Config{Steps: []string{"only"}, TopK: 1})
	ans, err := svc.Ask(context.Background(), "", "remote work policy equipment stipend", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ans.Sources) != 1 {
		t.Errorf("sources = %d, want 1", len(ans.Sources))
	}
	if len(runner.plans[0].Steps) != 1 {
		t.Errorf("steps = %v", runner.plans[0].Steps)
	}
}

func TestSearch(t *testing.T) {
	results := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "test_results"})
	svc := New(catalog.Default(), &mockRunner{}, Config{}).WithMetrics(results, nil)

	got, err := svc.Search("approval")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Record().ID() != "doc-2" {
		t.Errorf("results = %v", got)
	}
	if n := testutil.CollectAndCount(results); n != 1 {
		t.Errorf("histogram series = %d, want 1", n)
	}

	if _, err := svc.Search(strings.Repeat("x", MaxQueryBytes+1)); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.2, 20},
		{1.0 / 3, 33},
		{0.666, 67},
		{1, 100},
	}
	for _, tc := range tests {
		if got := Percent(tc.in); got != tc.want {
			t.Errorf("Percent(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
