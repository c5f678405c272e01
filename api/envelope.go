package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/tranvictor/electiongw/election"
	"github.com/tranvictor/electiongw/normalize"
)

// writeJSON encodes body before touching the response, so an unencodable
// body turns into a 500 failure envelope instead of a 200 with no content.
func writeJSON(w http.ResponseWriter, status int, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(envelope("Internal server error.", nil))
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
	return err
}

// successBody builds {"success":true, ...} with the fields in the given
// order.
func successBody(kv ...any) *normalize.Record {
	return normalize.Fields(append([]any{"success", true}, kv...)...)
}

func statusOf(kind election.Kind) int {
	if kind == election.ValidationError {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func envelope(message string, details []string) *normalize.Record {
	body := normalize.Fields("success", false, "message", message)
	if len(details) > 0 {
		body.Set("details", normalize.Value(details))
	}
	return body
}

// writeError converts err into the failure envelope. Only the classified
// message and details reach the client; the cause is logged.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger.With(zap.String("request_id", RequestID(r.Context())), zap.String("path", r.URL.Path))

	var e *election.Error
	if !errors.As(err, &e) {
		log.Error("unclassified failure", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, envelope("Internal server error.", nil))
		return
	}
	status := statusOf(e.Kind)
	if status < http.StatusInternalServerError {
		log.Info("rejected request", zap.Stringer("kind", e.Kind), zap.String("message", e.Message))
	} else {
		log.Error("request failed", zap.Stringer("kind", e.Kind), zap.Int64("index", e.Index), zap.Error(err))
	}
	writeJSON(w, status, envelope(e.Message, e.Details))
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	if err := writeJSON(w, status, body); err != nil {
		s.logger.Error("couldn't encode response",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}
