package retrieval

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/showcase/internal/domain"
	"github.com/kailas-cloud/showcase/internal/domain/document"
	"github.com/kailas-cloud/showcase/internal/domain/ranking/result"
	"github.com/kailas-cloud/showcase/internal/domain/stage"
	"github.com/kailas-cloud/showcase/internal/usecase/ranking"
	"github.com/kailas-cloud/showcase/internal/usecase/staging"
)

// Demo is the run label used for logs, locks and metrics.
const Demo = "rag"

// MaxQueryBytes bounds the accepted query size.
const MaxQueryBytes = 512

// FallbackResponse is returned when no document shares a token with the query.
const FallbackResponse = "I couldn't find relevant information about that in the knowledge base."

// DefaultSteps are the progress labels of a retrieval run.
func DefaultSteps() []string {
	return []string{
		"Analyzing query",
		"Searching knowledge base",
		"Ranking documents",
		"Generating response",
	}
}

// Config tunes the retrieval demo.
type Config struct {
	Steps []string
	Delay time.Duration
	TopK  int
}

// Answer is the outcome of one question.
type Answer struct {
	Query    string
	Sources  []result.Scored[document.Document]
	Response string
	Fallback bool
	Run      stage.Snapshot
}

// Service answers questions over the document catalog.
type Service struct {
	catalog   Catalog
	runner    Runner
	cfg       Config
	results   prometheus.Observer
	fallbacks prometheus.Counter
}

// New creates a retrieval service. Zero-valued Config fields fall back to defaults.
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

// WithMetrics attaches the result-size histogram and the fallback counter.
func (s *Service) WithMetrics(results prometheus.Observer, fallbacks prometheus.Counter) *Service {
	s.results = results
	s.fallbacks = fallbacks
	return s
}

// Search ranks the catalog for query without staging.
func (s *Service) Search(query string) ([]result.Scored[document.Document], error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}
	sources := ranking.RetrieveTop(query, s.catalog.Documents(), s.cfg.TopK)
	s.observe(len(sources))
	return sources, nil
}

// Ask runs the staged retrieval for caller and assembles an answer.
// Nothing is ranked unless the staged run completes.
func (s *Service) Ask(ctx context.Context, caller, query string, onStep staging.StepFunc) (Answer, error) {
	if err := validateQuery(query); err != nil {
		return Answer{}, err
	}

	snap, err := s.runner.Run(ctx, staging.Plan{
		Demo:   Demo,
		Caller: caller,
		Steps:  s.cfg.Steps,
		Delay:  s.cfg.Delay,
	}, onStep)
	if err != nil {
		return Answer{Query: query, Run: snap}, fmt.Errorf("retrieval run: %w", err)
	}

	sources := ranking.RetrieveTop(query, s.catalog.Documents(), s.cfg.TopK)
	s.observe(len(sources))

	answer := Answer{Query: query, Sources: sources, Run: snap}
	if len(sources) == 0 {
		answer.Fallback = true
		answer.Response = FallbackResponse
		if s.fallbacks != nil {
			s.fallbacks.Inc()
		}
		return answer, nil
	}
	answer.Response = compose(sources)
	return answer, nil
}

func (s *Service) observe(n int) {
	if s.results != nil {
		s.results.Observe(float64(n))
	}
}

func validateQuery(query string) error {
	if len(query) > MaxQueryBytes {
		return fmt.Errorf("%w: query is %d bytes, max %d", domain.ErrInvalidQuery, len(query), MaxQueryBytes)
	}
	return nil
}

// compose builds the response from the best source and cites every source with its relevance.
func compose(sources []result.Scored[document.Document]) string {
	top := sources[0].Record()

	var b strings.Builder
	fmt.Fprintf(&b, "According to %q: %s", top.Title(), top.Content())
	b.WriteString("\n\nSources:")
	for i, src := range sources {
		fmt.Fprintf(&b, "\n%d. %s (%s, %d%% relevant)",
			i+1, src.Record().Title(), src.Record().Category(), Percent(src.Score()))
	}
	return b.String()
}

// Percent renders a [0, 1] score as a whole percentage.
func Percent(score float64) int {
	return int(math.Floor(score*100 + 0.5))
}
