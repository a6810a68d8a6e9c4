package api

import "net/http"

// Recorder starts and stops recording solved frames into a session.
type Recorder interface {
	StartRecording(name string) (string, error)
	StopRecording() string
	Recording() string
}

// RecordingHandler controls the live recording.
type RecordingHandler struct {
	recorder Recorder
}

// NewRecordingHandler creates a RecordingHandler backed by rec.
func NewRecordingHandler(rec Recorder) *RecordingHandler {
	return &RecordingHandler{recorder: rec}
}

type recordingRequest struct {
	// Action is "start" or "stop".
	Action string `json:"action"`
	Name   string `json:"name,omitempty"`
}

type recordingResponse struct {
	Recording bool   `json:"recording"`
	SessionID string `json:"session_id,omitempty"`
}

// ServeHTTP handles GET and POST /api/recording. GET reports the current
// state. POST starts or stops recording and returns the session ID; stopping
// while idle is not an error.
func (h *RecordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		id := h.recorder.Recording()
		writeJSON(w, http.StatusOK, recordingResponse{Recording: id != "", SessionID: id})
	case http.MethodPost:
		var req recordingRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		switch req.Action {
		case "start":
			id, err := h.recorder.StartRecording(req.Name)
			if err != nil {
				writeError(w, http.StatusServiceUnavailable, "Failed to start recording")
				return
			}
			writeJSON(w, http.StatusOK, recordingResponse{Recording: true, SessionID: id})
		case "stop":
			id := h.recorder.StopRecording()
			writeJSON(w, http.StatusOK, recordingResponse{Recording: false, SessionID: id})
		default:
			writeError(w, http.StatusBadRequest, `Action must be "start" or "stop"`)
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
