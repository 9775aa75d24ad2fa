package utils

import (
	"encoding/json"
	"net/http"
)

const (
	StatusOK    = "ok"
	StatusError = "erro"
)

// ErrorResponse carries either a human-readable message (Error) or a
// verbatim upstream payload (Upstream, serialized as "erro").
type ErrorResponse struct {
	Status   string          `json:"status"`
	Error    string          `json:"error,omitempty"`
	Upstream json.RawMessage `json:"erro,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// ------------- Success responses -------------

// returns 200 OK; body must carry Status = StatusOK
func ResponseSuccess(w http.ResponseWriter, body any) {
	ResponseJSON(w, http.StatusOK, body)
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusBadRequest, ErrorResponse{Status: StatusError, Error: message})
}

// returns 400 Bad Request with the upstream error payload attached
func ResponseUpstreamError(w http.ResponseWriter, payload json.RawMessage) {
	ResponseJSON(w, http.StatusBadRequest, ErrorResponse{Status: StatusError, Upstream: payload})
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusNotFound, ErrorResponse{Status: StatusError, Error: message})
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusTooManyRequests, ErrorResponse{Status: StatusError, Error: message})
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, ErrorResponse{Status: StatusError, Error: message})
}

// returns 503 Service Unavailable
func ResponseServiceUnavailable(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusServiceUnavailable, ErrorResponse{Status: StatusError, Error: message})
}

// ResponseText writes a plain text body, for webhook callers
func ResponseText(w http.ResponseWriter, code int, text string) {
	if text == "" {
		text = http.StatusText(code)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	w.Write([]byte(text))
}
