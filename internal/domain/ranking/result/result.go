package result

// Scored pairs a catalog record with the score one ranking invocation assigned to it.
// It is a transient copy; the catalog record itself is never annotated.
type Scored[T any] struct {
	record T
	score  float64
}

// New creates a scored record.
func New[T any](record T, score float64) Scored[T] {
	return Scored[T]{record: record, score: score}
}

// Record returns the ranked record.
func (s Scored[T]) Record() T { return s.record }

// Score returns the relevance score.
func (s Scored[T]) Score() float64 { return s.score }
