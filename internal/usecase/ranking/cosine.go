package ranking

import (
	"math"

	"github.com/kailas-cloud/showcase/internal/domain"
	dompat "github.com/kailas-cloud/showcase/internal/domain/patient"
	"github.com/kailas-cloud/showcase/internal/domain/ranking/result"
)

// CosineSimilarity returns dot(a,b)/(|a|*|b|).
// Mismatched lengths and zero vectors return 0.
func CosineSimilarity(a, b []int) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// RoundScore rounds to 2 decimals with halves rounding towards +Inf.
func RoundScore(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

// CosineScorer scores a candidate patient by the cosine of the two preference vectors,
// rounded to 2 decimals.
type CosineScorer struct{}

var _ Scorer[dompat.Patient, dompat.Patient] = CosineScorer{}

// Score returns the rounded cosine similarity; a zero vector on either side scores 0.
func (CosineScorer) Score(target, candidate dompat.Patient) float64 {
	return RoundScore(CosineSimilarity(target.Preferences(), candidate.Preferences()))
}

// MatchPatients ranks every other patient by preference similarity to target.
func MatchPatients(target dompat.Patient, catalog []dompat.Patient) []result.Scored[dompat.Patient] {
	return MatchPatientsTop(target, catalog, domain.DefaultRankingConfig().TopK)
}

// MatchPatientsTop is MatchPatients with an explicit result cap.
// The target is excluded by id; no score threshold is applied.
func MatchPatientsTop(target dompat.Patient, catalog []dompat.Patient, topK int) []result.Scored[dompat.Patient] {
	return Rank(target, catalog, CosineScorer{}, Options[dompat.Patient]{
		Limit: topK,
		Exclude: func(p dompat.Patient) bool {
			return p.ID() == target.ID()
		},
	})
}
