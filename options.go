package showcase

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	documents []Document
	patients  []Patient

	stepDelay      time.Duration
	retrievalSteps []string
	matchingSteps  []string
	topK           int
	clock          Clock

	// Shared run lock; empty addrs keeps locks in-process.
	driver   string
	addrs    []string
	password string
	caller   string

	logger *zap.Logger
}

// WithDocuments replaces the built-in document catalog.
func WithDocuments(docs ...Document) Option {
	return optionFunc(func(c *clientConfig) {
		c.documents = append(c.documents, docs...)
	})
}

// WithPatients replaces the built-in patient cohort.
func WithPatients(patients ...Patient) Option {
	return optionFunc(func(c *clientConfig) {
		c.patients = append(c.patients, patients...)
	})
}

// WithStepDelay sets the pause after each progress step (default 800ms).
func WithStepDelay(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.stepDelay = d
	})
}

// WithSteps overrides the progress labels of both demos. A nil slice keeps the default.
func WithSteps(retrieval, matching []string) Option {
	return optionFunc(func(c *clientConfig) {
		c.retrievalSteps = retrieval
		c.matchingSteps = matching
	})
}

// WithTopK sets how many ranked records are returned (default 3).
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = k
	})
}

// WithClock injects the time source staged runs wait on.
func WithClock(clock Clock) Option {
	return optionFunc(func(c *clientConfig) {
		c.clock = clock
	})
}

// WithRedisLock serializes staged runs for caller across processes through Redis.
func WithRedisLock(addr, password, caller string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
		c.caller = caller
	})
}

// WithValkeyLock serializes staged runs for caller across processes through Valkey.
func WithValkeyLock(addr, password, caller string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
		c.caller = caller
	})
}

// WithLogger sets the logger used for staged run events.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
