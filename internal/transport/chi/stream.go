package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/showcase/internal/usecase/staging"
)

const ndjsonContentType = "application/x-ndjson"

// runFunc executes one staged demo and returns its response body.
type runFunc func(ctx context.Context, onStep staging.StepFunc) (any, error)

// serveRun answers a staged demo either as one JSON document once the run completes,
// or, when the client accepts NDJSON, as a stream of step events followed by the result.
// Errors raised before the first step keep their HTTP status; later ones become an error event.
func (s *Server) serveRun(w http.ResponseWriter, r *http.Request, total int, run runFunc) {
	ctx := r.Context()
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	if !wantsStream(r) {
		body, err := run(ctx, nil)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, body)
		return
	}

	st := newStream(w)
	body, err := run(ctx, func(index int, label string) {
		st.send(StreamEvent{Type: EventStep, Index: &index, Label: label, Total: total})
	})
	if err != nil {
		if !st.started {
			s.handleDomainError(w, err)
			return
		}
		s.logger.Warn("staged run aborted mid-stream", zap.Error(err))
		resp := errorResponse(err)
		st.send(StreamEvent{Type: EventError, Error: &resp})
		return
	}
	st.send(StreamEvent{Type: EventResult, Result: body})
}

func wantsStream(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), ndjsonContentType)
}

// ndjsonStream writes one JSON object per line and flushes after each.
type ndjsonStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	enc     *json.Encoder
	started bool
}

func newStream(w http.ResponseWriter) *ndjsonStream {
	f, _ := w.(http.Flusher)
	return &ndjsonStream{w: w, flusher: f, enc: json.NewEncoder(w)}
}

func (st *ndjsonStream) send(ev StreamEvent) {
	if !st.started {
		h := st.w.Header()
		h.Set("Content-Type", ndjsonContentType)
		h.Set("Cache-Control", "no-cache")
		h.Set("X-Accel-Buffering", "no")
		st.w.WriteHeader(http.StatusOK)
		st.started = true
	}
	_ = st.enc.Encode(ev)
	if st.flusher != nil {
		st.flusher.Flush()
	}
}
