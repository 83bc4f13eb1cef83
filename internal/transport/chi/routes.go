package chi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	domdoc "github.com/kailas-cloud/showcase/internal/domain/document"
	healthuc "github.com/kailas-cloud/showcase/internal/usecase/health"
	"github.com/kailas-cloud/showcase/internal/usecase/matching"
	"github.com/kailas-cloud/showcase/internal/usecase/staging"
)

const (
	sessionHeader   = "X-Session-ID"
	maxSessionBytes = 128
)

// Mount registers the API routes on r.
func (s *Server) Mount(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r gochi.Router) {
		r.Get("/documents", s.ListDocuments)
		r.Get("/documents/search", s.SearchDocuments)
		r.Post("/rag/ask", s.Ask)
		r.Get("/patients", s.ListPatients)
		r.Get("/patients/{id}/similar", s.SimilarPatients)
		r.Post("/patients/{id}/matches", s.MatchPatient)
	})
}

// ListDocuments handles GET /api/v1/documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	var category *string
	if err := runtime.BindQueryParameter("form", true, false, "category", r.URL.Query(), &category); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter category")
		return
	}

	var docs []domdoc.Document
	if category != nil && *category != "" {
		docs = s.catalog.DocumentsByCategory(*category)
	} else {
		docs = s.catalog.Documents()
	}

	items := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		items[i] = documentToResponse(d)
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Items: items, Count: len(items)})
}

// SearchDocuments handles GET /api/v1/documents/search: ranking without the staged run.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	var q string
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter q")
		return
	}

	sources, err := s.retrieval.Search(q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SourceResponse, len(sources))
	for i, src := range sources {
		items[i] = sourceToResponse(src)
	}
	writeJSON(w, http.StatusOK, items)
}

// Ask handles POST /api/v1/rag/ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	caller := callerKey(r)

	s.serveRun(w, r, len(s.retrieval.Steps()), func(ctx context.Context, onStep staging.StepFunc) (any, error) {
		ans, err := s.retrieval.Ask(ctx, caller, req.Query, onStep)
		if err != nil {
			return nil, err
		}
		return answerToResponse(ans), nil
	})
}

// ListPatients handles GET /api/v1/patients.
func (s *Server) ListPatients(w http.ResponseWriter, _ *http.Request) {
	patients := s.catalog.Patients()
	items := make([]PatientResponse, len(patients))
	for i, p := range patients {
		items[i] = patientToResponse(p)
	}
	writeJSON(w, http.StatusOK, PatientListResponse{Items: items, Count: len(items)})
}

// SimilarPatients handles GET /api/v1/patients/{id}/similar: ranking without the staged run.
func (s *Server) SimilarPatients(w http.ResponseWriter, r *http.Request) {
	id, ok := bindPatientID(w, r)
	if !ok {
		return
	}

	target, matches, err := s.matching.Similar(id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportToResponse(matching.Report{
		Target:   target,
		Matches:  matches,
		Insights: matching.Insights(target, matches),
	}))
}

// MatchPatient handles POST /api/v1/patients/{id}/matches.
func (s *Server) MatchPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := bindPatientID(w, r)
	if !ok {
		return
	}
	caller := callerKey(r)

	s.serveRun(w, r, len(s.matching.Steps()), func(ctx context.Context, onStep staging.StepFunc) (any, error) {
		rep, err := s.matching.Match(ctx, caller, id, onStep)
		if err != nil {
			return nil, err
		}
		return reportToResponse(rep), nil
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func bindPatientID(w http.ResponseWriter, r *http.Request) (int, bool) {
	var id int
	err := runtime.BindStyledParameterWithOptions("simple", "id", gochi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter id")
		return 0, false
	}
	return id, true
}

// callerKey identifies who a staged run belongs to: the session header when present, else the client host.
func callerKey(r *http.Request) string {
	if sid := strings.TrimSpace(r.Header.Get(sessionHeader)); sid != "" && len(sid) <= maxSessionBytes {
		return "session:" + sid
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
