package showcase

import "github.com/kailas-cloud/showcase/internal/usecase/staging"

// Document is a knowledge-base entry.
type Document struct {
	ID       string
	Title    string
	Content  string
	Category string
}

// Patient is a cohort member with an 8-dimensional preference vector (values 1..5).
type Patient struct {
	ID          int
	Name        string
	Age         int
	Condition   string
	Preferences []int
}

// ScoredDocument is a retrieved document and its word-overlap score in [0, 1].
type ScoredDocument struct {
	Document Document
	Score    float64
}

// ScoredPatient is a matched patient and its cosine similarity rounded to 2 decimals.
type ScoredPatient struct {
	Patient Patient
	Score   float64
}

// Answer is the result of Ask.
type Answer struct {
	Query    string
	Response string
	Fallback bool
	Sources  []ScoredDocument
	RunID    string
}

// Report is the result of Match.
type Report struct {
	Target   Patient
	Matches  []ScoredPatient
	Insights []string
	RunID    string
}

// StepFunc receives each progress step before it starts.
type StepFunc = staging.StepFunc

// Clock is the time source staged runs wait on.
type Clock = staging.Clock
