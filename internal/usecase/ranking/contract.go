package ranking

// Scorer computes the similarity of one catalog record to a query.
// Implementations must be pure: no state carried across records.
type Scorer[Q, R any] interface {
	Score(query Q, record R) float64
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc[Q, R any] func(query Q, record R) float64

// Score calls f(query, record).
func (f ScorerFunc[Q, R]) Score(query Q, record R) float64 { return f(query, record) }
