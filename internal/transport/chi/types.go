package chi

import (
	domdoc "github.com/kailas-cloud/showcase/internal/domain/document"
	dompat "github.com/kailas-cloud/showcase/internal/domain/patient"
	"github.com/kailas-cloud/showcase/internal/domain/ranking/result"
	"github.com/kailas-cloud/showcase/internal/usecase/matching"
	"github.com/kailas-cloud/showcase/internal/usecase/retrieval"
)

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodePatientNotFound  ErrorCode = "patient_not_found"
	ErrorCodeRunInProgress    ErrorCode = "run_in_progress"
	ErrorCodeRunCanceled      ErrorCode = "run_canceled"
	ErrorCodeRunFailed        ErrorCode = "run_failed"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// DocumentResponse is a knowledge-base document.
type DocumentResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// DocumentListResponse lists documents.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Count int                `json:"count"`
}

// PatientResponse is a cohort member.
type PatientResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Condition   string `json:"condition"`
	Preferences []int  `json:"preferences"`
}

// PatientListResponse lists patients.
type PatientListResponse struct {
	Items []PatientResponse `json:"items"`
	Count int               `json:"count"`
}

// AskRequest is the body of POST /api/v1/rag/ask.
type AskRequest struct {
	Query string `json:"query"`
}

// SourceResponse is a cited document with its relevance.
type SourceResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Score     float64 `json:"score"`
	Relevance int     `json:"relevance_percent"`
}

// AnswerResponse is a RAG answer.
type AnswerResponse struct {
	Query    string           `json:"query"`
	Response string           `json:"response"`
	Fallback bool             `json:"fallback"`
	Sources  []SourceResponse `json:"sources"`
	RunID    string           `json:"run_id,omitempty"`
}

// MatchResponse is one similar patient.
type MatchResponse struct {
	Patient PatientResponse `json:"patient"`
	Score   float64         `json:"score"`
}

// MatchReportResponse is a patient matching report.
type MatchReportResponse struct {
	Target   PatientResponse `json:"target"`
	Matches  []MatchResponse `json:"matches"`
	Insights []string        `json:"insights"`
	RunID    string          `json:"run_id,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Stream event types.
const (
	EventStep   = "step"
	EventResult = "result"
	EventError  = "error"
)

// StreamEvent is one NDJSON line of a progress stream.
type StreamEvent struct {
	Type   string         `json:"type"`
	Index  *int           `json:"index,omitempty"`
	Label  string         `json:"label,omitempty"`
	Total  int            `json:"total,omitempty"`
	Result any            `json:"result,omitempty"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

func documentToResponse(d domdoc.Document) DocumentResponse {
	return DocumentResponse{
		ID:       d.ID(),
		Title:    d.Title(),
		Content:  d.Content(),
		Category: d.Category(),
	}
}

func patientToResponse(p dompat.Patient) PatientResponse {
	return PatientResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Age:         p.Age(),
		Condition:   p.Condition(),
		Preferences: p.Preferences(),
	}
}

func answerToResponse(a retrieval.Answer) AnswerResponse {
	sources := make([]SourceResponse, len(a.Sources))
	for i, s := range a.Sources {
		sources[i] = sourceToResponse(s)
	}
	return AnswerResponse{
		Query:    a.Query,
		Response: a.Response,
		Fallback: a.Fallback,
		Sources:  sources,
		RunID:    a.Run.ID,
	}
}

func sourceToResponse(s result.Scored[domdoc.Document]) SourceResponse {
	return SourceResponse{
		ID:        s.Record().ID(),
		Title:     s.Record().Title(),
		Category:  s.Record().Category(),
		Score:     s.Score(),
		Relevance: retrieval.Percent(s.Score()),
	}
}

func reportToResponse(r matching.Report) MatchReportResponse {
	matches := make([]MatchResponse, len(r.Matches))
	for i, m := range r.Matches {
		matches[i] = MatchResponse{Patient: patientToResponse(m.Record()), Score: m.Score()}
	}
	insights := r.Insights
	if insights == nil {
		insights = []string{}
	}
	return MatchReportResponse{
		Target:   patientToResponse(r.Target),
		Matches:  matches,
		Insights: insights,
		RunID:    r.Run.ID,
	}
}
