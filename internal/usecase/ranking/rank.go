package ranking

import (
	"math"
	"sort"

	"github.com/kailas-cloud/showcase/internal/domain/ranking/result"
)

// Options tunes a Rank call. The zero value keeps every record and applies no limit.
type Options[R any] struct {
	// Limit truncates the result set; <= 0 means unlimited.
	Limit int
	// Exclude drops a record before it is scored.
	Exclude func(record R) bool
	// Keep drops a scored record when it returns false.
	Keep func(score float64) bool
}

// Rank scores every catalog record against query, filters, stable-sorts descending
// and truncates. The catalog slice is only read.
// Non-finite scores are treated as 0 so degenerate inputs sort like any other miss.
func Rank[Q, R any](query Q, catalog []R, scorer Scorer[Q, R], opts Options[R]) []result.Scored[R] {
	scored := make([]result.Scored[R], 0, len(catalog))
	for _, rec := range catalog {
		if opts.Exclude != nil && opts.Exclude(rec) {
			continue
		}
		s := scorer.Score(query, rec)
		if math.IsNaN(s) || math.IsInf(s, 0) {
			s = 0
		}
		if opts.Keep != nil && !opts.Keep(s) {
			continue
		}
		scored = append(scored, result.New(rec, s))
	}

	// Stable: ties keep catalog order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score() > scored[j].Score()
	})

	if opts.Limit > 0 && len(scored) > opts.Limit {
		scored = scored[:opts.Limit]
	}
	return scored
}

// IsSorted reports whether results are in non-increasing score order.
func IsSorted[R any](results []result.Scored[R]) bool {
	for i := 1; i < len(results); i++ {
		if results[i].Score() > results[i-1].Score() {
			return false
		}
	}
	return true
}

func positive(score float64) bool { return score > 0 }
