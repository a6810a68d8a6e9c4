// Package api provides HTTP API handlers for solving, recording and settings.
package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// maxBodyBytes bounds request bodies; a full holistic frame is well under 1 MiB.
const maxBodyBytes = 4 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON decodes a size-limited request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
