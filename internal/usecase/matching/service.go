package matching

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/showcase/internal/domain"
	"github.com/kailas-cloud/showcase/internal/domain/patient"
	"github.com/kailas-cloud/showcase/internal/domain/ranking/result"
	"github.com/kailas-cloud/showcase/internal/domain/stage"
	"github.com/kailas-cloud/showcase/internal/usecase/ranking"
	"github.com/kailas-cloud/showcase/internal/usecase/staging"
)

// Demo is the run label used for logs, locks and metrics.
const Demo = "matching"

// DefaultSteps are the progress labels of a matching run.
func DefaultSteps() []string {
	return []string{
		"Loading patient profile",
		"Computing preference vectors",
		"Calculating similarity",
		"Ranking matches",
	}
}

// Config tunes the matching demo.
type Config struct {
	Steps []string
	Delay time.Duration
	TopK  int
}

// Report is the outcome of matching one patient against the cohort.
type Report struct {
	Target   patient.Patient
	Matches  []result.Scored[patient.Patient]
	Insights []string
	Run      stage.Snapshot
}

// Service matches patients by preference similarity.
type Service struct {
	catalog Catalog
	runner  Runner
	cfg     Config
	results prometheus.Observer
}

// New creates a matching service. Zero-valued Config fields fall back to defaults.
func New(catalog Catalog, runner Runner, cfg Config) *Service {
	if cfg.Steps == nil {
		cfg.Steps = DefaultSteps()
	}
	if cfg.TopK <= 0 {
		cfg.TopK = domain.DefaultRankingConfig().TopK
	}
	return &Service{catalog: catalog, runner: runner, cfg: cfg}
}

// Steps returns the progress labels of a run.
func (s *Service) Steps() []string {
	return append([]string(nil), s.cfg.Steps...)
}

// WithMetrics attaches the result-size histogram.
func (s *Service) WithMetrics(results prometheus.Observer) *Service {
	s.results = results
	return s
}

// Similar ranks the cohort against patientID without staging.
func (s *Service) Similar(patientID int) (patient.Patient, []result.Scored[patient.Patient], error) {
	target, err := s.catalog.Patient(patientID)
	if err != nil {
		return patient.Patient{}, nil, fmt.Errorf("match patient %d: %w", patientID, err)
	}
	matches := s.rank(target)
	return target, matches, nil
}

// Match runs the staged matching for caller and reports the closest patients.
// The target is resolved before the run so an unknown id never starts one.
func (s *Service) Match(ctx context.Context, caller string, patientID int, onStep staging.StepFunc) (Report, error) {
	target, err := s.catalog.Patient(patientID)
	if err != nil {
		return Report{}, fmt.Errorf("match patient %d: %w", patientID, err)
	}

	snap, err := s.runner.Run(ctx, staging.Plan{
		Demo:   Demo,
		Caller: caller,
		Steps:  s.cfg.Steps,
		Delay:  s.cfg.Delay,
	}, onStep)
	if err != nil {
		return Report{Target: target, Run: snap}, fmt.Errorf("matching run: %w", err)
	}

	matches := s.rank(target)
	return Report{
		Target:   target,
		Matches:  matches,
		Insights: Insights(target, matches),
		Run:      snap,
	}, nil
}

func (s *Service) rank(target patient.Patient) []result.Scored[patient.Patient] {
	matches := ranking.MatchPatientsTop(target, s.catalog.Patients(), s.cfg.TopK)
	if s.results != nil {
		s.results.Observe(float64(len(matches)))
	}
	return matches
}

// Insights summarizes the matches: the closest patient first, then every match
// sharing the target's condition.
func Insights(target patient.Patient, matches []result.Scored[patient.Patient]) []string {
	if len(matches) == 0 {
		return []string{fmt.Sprintf("No other patients to compare with %s.", target.Name())}
	}

	best := matches[0]
	out := []string{fmt.Sprintf("%s is the closest match at %d%% preference similarity.",
		best.Record().Name(), percent(best.Score()))}

	shared := 0
	for _, m := range matches {
		if m.Record().Condition() == target.Condition() {
			out = append(out, fmt.Sprintf("%s shares the %s diagnosis.", m.Record().Name(), target.Condition()))
			shared++
		}
	}
	if shared == 0 {
		out = append(out, fmt.Sprintf("None of the top matches share the %s diagnosis.", target.Condition()))
	}
	return out
}

func percent(score float64) int {
	return int(math.Floor(score*100 + 0.5))
}
