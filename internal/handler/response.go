package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON is a helper function for sending json responses.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError sends the standard error body tagged with the request id.
func writeError(w http.ResponseWriter, status int, message, requestID string) {
	writeJSON(w, status, errorResponse{Error: message, RequestID: requestID})
}
