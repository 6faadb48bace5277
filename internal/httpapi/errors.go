package httpapi

import (
	"encoding/json"
	"net/http"

	"inferd/internal/engine"
	"inferd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusForError maps engine errors onto HTTP status codes. Unrecognized
// errors become 500.
func statusForError(err error) int {
	switch {
	case engine.IsInvalidRequest(err):
		return http.StatusBadRequest
	case engine.IsNotReady(err):
		return http.StatusServiceUnavailable
	case engine.IsDependencyUnavailable(err):
		return http.StatusServiceUnavailable
	case engine.IsTooBusy(err):
		IncrementBackpressure("queue_full")
		return http.StatusTooManyRequests
	case engine.IsTimeout(err):
		return http.StatusGatewayTimeout
	case engine.IsLoadError(err):
		return http.StatusInternalServerError
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// writeEngineError maps err onto a status and writes the error payload.
func writeEngineError(w http.ResponseWriter, err error) int {
	status := statusForError(err)
	writeJSONError(w, status, err.Error())
	return status
}
