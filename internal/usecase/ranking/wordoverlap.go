package ranking

import (
	"strings"

	"github.com/kailas-cloud/showcase/internal/domain"
	domdoc "github.com/kailas-cloud/showcase/internal/domain/document"
	"github.com/kailas-cloud/showcase/internal/domain/ranking/result"
)

// Tokenize lower-cases s and splits it on single spaces.
// Runs of spaces produce no empty tokens; punctuation stays attached to its word.
func Tokenize(s string) []string {
	parts := strings.Split(strings.ToLower(s), " ")
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

func tokenSet(s string) map[string]struct{} {
	tokens := Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// WordOverlapScorer scores a document by the share of query tokens found verbatim
// in its title or content. Repeated query tokens count once per occurrence.
type WordOverlapScorer struct{}

var _ Scorer[string, domdoc.Document] = WordOverlapScorer{}

// Score returns matches/len(queryTokens) in [0, 1]; an empty query scores 0.
func (WordOverlapScorer) Score(query string, doc domdoc.Document) float64 {
	return overlap(Tokenize(query), doc)
}

func overlap(queryTokens []string, doc domdoc.Document) float64 {
	if len(queryTokens) == 0 {
		return 0
	}
	content := tokenSet(doc.Content())
	title := tokenSet(doc.Title())

	matches := 0
	for _, t := range queryTokens {
		if _, ok := content[t]; ok {
			matches++
			continue
		}
		if _, ok := title[t]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(queryTokens))
}

// Retrieve returns the top documents with a strictly positive word-overlap score.
func Retrieve(query string, catalog []domdoc.Document) []result.Scored[domdoc.Document] {
	return RetrieveTop(query, catalog, domain.DefaultRankingConfig().TopK)
}

// RetrieveTop is Retrieve with an explicit result cap.
func RetrieveTop(query string, catalog []domdoc.Document, topK int) []result.Scored[domdoc.Document] {
	tokens := Tokenize(query)
	scorer := ScorerFunc[[]string, domdoc.Document](overlap)
	return Rank(tokens, catalog, scorer, Options[domdoc.Document]{
		Limit: topK,
		Keep:  positive,
	})
}
