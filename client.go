package showcase

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/showcase/internal/db"
	"github.com/kailas-cloud/showcase/internal/db/memory"
	dbRedis "github.com/kailas-cloud/showcase/internal/db/redis"
	"github.com/kailas-cloud/showcase/internal/domain"
	domdoc "github.com/kailas-cloud/showcase/internal/domain/document"
	dompat "github.com/kailas-cloud/showcase/internal/domain/patient"
	"github.com/kailas-cloud/showcase/internal/repository/catalog"
	"github.com/kailas-cloud/showcase/internal/repository/runlock"
	"github.com/kailas-cloud/showcase/internal/usecase/matching"
	"github.com/kailas-cloud/showcase/internal/usecase/retrieval"
	"github.com/kailas-cloud/showcase/internal/usecase/staging"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCaller           = "client"
)

// Client is the showcase SDK entry point. It is safe for concurrent use, but
// only one staged run (Ask or Match) may be in flight per caller at a time.
type Client struct {
	store     db.Store
	catalog   *catalog.Repository
	retrieval *retrieval.Service
	matching  *matching.Service
	caller    string
}

// New creates a Client over the built-in catalog unless WithDocuments / WithPatients replace it.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		stepDelay: domain.DefaultStepDelay,
		caller:    defaultCaller,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	cat, err := buildCatalog(cfg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("showcase: lock store not ready: %w", err)
	}

	return wireClient(store, cat, cfg), nil
}

func buildCatalog(cfg *clientConfig) (*catalog.Repository, error) {
	def := catalog.Default()

	docs := def.Documents()
	if len(cfg.documents) > 0 {
		docs = make([]domdoc.Document, 0, len(cfg.documents))
		for _, d := range cfg.documents {
			doc, err := domdoc.New(d.ID, d.Title, d.Content, d.Category)
			if err != nil {
				return nil, fmt.Errorf("showcase: document %q: %w", d.ID, err)
			}
			docs = append(docs, doc)
		}
	}

	pats := def.Patients()
	if len(cfg.patients) > 0 {
		pats = make([]dompat.Patient, 0, len(cfg.patients))
		for _, p := range cfg.patients {
			pat, err := dompat.New(p.ID, p.Name, p.Age, p.Condition, p.Preferences)
			if err != nil {
				return nil, fmt.Errorf("showcase: patient %d: %w", p.ID, err)
			}
			pats = append(pats, pat)
		}
	}

	cat, err := catalog.New(docs, pats)
	if err != nil {
		return nil, fmt.Errorf("showcase: %w", err)
	}
	return cat, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "":
		return memory.NewStore(), nil
	case "redis", "valkey":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("showcase: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("showcase: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cat *catalog.Repository, cfg *clientConfig) *Client {
	sim := staging.New(cfg.clock, runlock.New(store), cfg.logger)

	return &Client{
		store:   store,
		catalog: cat,
		retrieval: retrieval.New(cat, sim, retrieval.Config{
			Steps: cfg.retrievalSteps,
			Delay: cfg.stepDelay,
			TopK:  cfg.topK,
		}),
		matching: matching.New(cat, sim, matching.Config{
			Steps: cfg.matchingSteps,
			Delay: cfg.stepDelay,
			TopK:  cfg.topK,
		}),
		caller: cfg.caller,
	}
}

// Close releases the lock store.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Documents returns the document catalog.
func (c *Client) Documents() []Document {
	docs := c.catalog.Documents()
	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = documentFromDomain(d)
	}
	return out
}

// Patients returns the patient cohort.
func (c *Client) Patients() []Patient {
	pats := c.catalog.Patients()
	out := make([]Patient, len(pats))
	for i, p := range pats {
		out[i] = patientFromDomain(p)
	}
	return out
}

// Retrieve ranks the catalog for query immediately, without a staged run.
// At most top-K documents with a positive score are returned; none is not an error.
func (c *Client) Retrieve(query string) ([]ScoredDocument, error) {
	sources, err := c.retrieval.Search(query)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}
	return scoredDocuments(sources), nil
}

// MatchPatients ranks the cohort against patient id immediately, without a staged run.
func (c *Client) MatchPatients(id int) ([]ScoredPatient, error) {
	_, matches, err := c.matching.Similar(id)
	if err != nil {
		return nil, fmt.Errorf("match patients: %w", err)
	}
	return scoredPatients(matches), nil
}

// Ask runs the staged retrieval demo and answers query.
func (c *Client) Ask(ctx context.Context, query string, onStep StepFunc) (Answer, error) {
	ans, err := c.retrieval.Ask(ctx, c.caller, query, onStep)
	if err != nil {
		return Answer{}, fmt.Errorf("ask: %w", err)
	}
	return Answer{
		Query:    ans.Query,
		Response: ans.Response,
		Fallback: ans.Fallback,
		Sources:  scoredDocuments(ans.Sources),
		RunID:    ans.Run.ID,
	}, nil
}

// Match runs the staged matching demo for patient id.
func (c *Client) Match(ctx context.Context, id int, onStep StepFunc) (Report, error) {
	rep, err := c.matching.Match(ctx, c.caller, id, onStep)
	if err != nil {
		return Report{}, fmt.Errorf("match: %w", err)
	}
	return Report{
		Target:   patientFromDomain(rep.Target),
		Matches:  scoredPatients(rep.Matches),
		Insights: rep.Insights,
		RunID:    rep.Run.ID,
	}, nil
}
