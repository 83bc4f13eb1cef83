package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/showcase/internal/domain"
	"github.com/kailas-cloud/showcase/internal/repository/catalog"
	healthuc "github.com/kailas-cloud/showcase/internal/usecase/health"
	"github.com/kailas-cloud/showcase/internal/usecase/matching"
	"github.com/kailas-cloud/showcase/internal/usecase/retrieval"
)

// errorMapping binds a domain sentinel to its HTTP status and error code.
type errorMapping struct {
	sentinel error
	status   int
	code     ErrorCode
}

// statusClientClosedRequest is the de facto status for a request the client abandoned.
const statusClientClosedRequest = 499

// errorMappings are checked in order; more specific sentinels come first.
var errorMappings = []errorMapping{
	{domain.ErrPatientNotFound, http.StatusNotFound, ErrorCodePatientNotFound},
	{domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound},
	{domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeValidationFailed},
	{domain.ErrRunInProgress, http.StatusConflict, ErrorCodeRunInProgress},
	{domain.ErrRunCanceled, statusClientClosedRequest, ErrorCodeRunCanceled},
	{domain.ErrRunFailed, http.StatusServiceUnavailable, ErrorCodeRunFailed},
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the demo API.
type Server struct {
	catalog       *catalog.Repository
	retrieval     *retrieval.Service
	matching      *matching.Service
	health        *healthuc.Service
	runTimeout    time.Duration
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. runTimeout bounds each staged run; zero disables it.
func NewServer(
	cat *catalog.Repository,
	retrievalSvc *retrieval.Service,
	matchingSvc *matching.Service,
	health *healthuc.Service,
	runTimeout time.Duration,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:    cat,
		retrieval:  retrievalSvc,
		matching:   matchingSvc,
		health:     health,
		runTimeout: runTimeout,
		logger:     logger,
	}
	for _, m := range errorMappings {
		s.errorHandlers = append(s.errorHandlers, sentinelHandler(m.sentinel, m.status, m.code))
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			return m.sentinel.Error()
		}
	}
	return "internal error"
}

// errorResponse classifies err for clients that already received a 200, such as a progress stream.
func errorResponse(err error) ErrorResponse {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			return ErrorResponse{Code: m.code, Message: m.sentinel.Error()}
		}
	}
	return ErrorResponse{Code: ErrorCodeInternalError, Message: "internal error"}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
