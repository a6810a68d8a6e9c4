package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/abhinaya/internal/export"
	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/store"
)

// SessionHandler handles HTTP requests for recorded sessions and their frames.
type SessionHandler struct {
	store    *store.Store
	exporter *export.Runner
}

// NewSessionHandler creates a new SessionHandler with the given store.
// exporter may be nil, which disables the export route.
func NewSessionHandler(s *store.Store, exporter *export.Runner) *SessionHandler {
	return &SessionHandler{store: s, exporter: exporter}
}

// ServeHTTP routes /api/sessions, /api/sessions/{id},
// /api/sessions/{id}/frames and /api/sessions/{id}/export.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, id)
		case http.MethodDelete:
			h.delete(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case len(parts) == 2 && parts[1] == "frames":
		switch r.Method {
		case http.MethodGet:
			h.listFrames(w, r, id)
		case http.MethodPost:
			h.appendFrame(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case len(parts) == 2 && parts[1] == "export" && h.exporter != nil:
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.export(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

type createSessionRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

type sessionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Source    string `json:"source"`
	Frames    int    `json:"frames"`
	CreatedAt string `json:"created_at"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type appendFrameRequest struct {
	TimestampMs int64           `json:"timestamp_ms"`
	Data        json.RawMessage `json:"data"`
}

type appendFrameResponse struct {
	Sequence int `json:"sequence"`
}

type frameResponse struct {
	Sequence    int             `json:"sequence"`
	TimestampMs int64           `json:"timestamp_ms"`
	Data        json.RawMessage `json:"data"`
}

type listFramesResponse struct {
	Frames []frameResponse `json:"frames"`
}

func toSessionResponse(s *store.Session) sessionResponse {
	return sessionResponse{
		ID:        s.ID,
		Name:      s.Name,
		Source:    s.Source.String(),
		Frames:    s.Frames,
		CreatedAt: formatTime(s.CreatedAt),
	}
}

// list handles GET /api/sessions.
func (h *SessionHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	response := listSessionsResponse{
		Sessions: make([]sessionResponse, 0, len(sessions)),
	}
	for _, s := range sessions {
		response.Sessions = append(response.Sessions, toSessionResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/sessions/{id}.
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	session, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// create handles POST /api/sessions.
func (h *SessionHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		req.Name = "Session " + time.Now().Format("2006-01-02 15:04:05")
	}

	source, err := landmark.ParseSource(req.Source)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid source")
		return
	}

	session := &store.Session{
		ID:     uuid.New().String(),
		Name:   req.Name,
		Source: source,
	}
	if err := h.store.Sessions().Create(session); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

// delete handles DELETE /api/sessions/{id}.
func (h *SessionHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Sessions().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listFrames handles GET /api/sessions/{id}/frames.
func (h *SessionHandler) listFrames(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Sessions().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	frames, err := h.store.Frames().GetBySessionID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list frames")
		return
	}

	response := listFramesResponse{
		Frames: make([]frameResponse, 0, len(frames)),
	}
	for _, f := range frames {
		response.Frames = append(response.Frames, frameResponse{
			Sequence:    f.Sequence,
			TimestampMs: f.TimestampMs,
			Data:        f.Data,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// appendFrame handles POST /api/sessions/{id}/frames.
func (h *SessionHandler) appendFrame(w http.ResponseWriter, r *http.Request, id string) {
	var req appendFrameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Data) == 0 {
		writeError(w, http.StatusBadRequest, "Data is required")
		return
	}

	seq, err := h.store.Frames().Append(id, req.TimestampMs, req.Data)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to append frame")
		return
	}

	writeJSON(w, http.StatusCreated, appendFrameResponse{Sequence: seq})
}

type exportResponse struct {
	Results []export.Result `json:"results"`
}

func (h *SessionHandler) export(w http.ResponseWriter, r *http.Request, id string) {
	results, err := h.exporter.Export(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export session")
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{Results: results})
}
