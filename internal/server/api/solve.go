package api

import (
	"errors"
	"net/http"
	"sync"

	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/rig"
)

// SolveHandler runs the rig solvers on a posted landmark frame. It keeps no
// history between requests.
type SolveHandler struct {
	mu       sync.RWMutex
	defaults rig.Options
}

// NewSolveHandler creates a SolveHandler that uses defaults when a request
// carries no options.
func NewSolveHandler(defaults rig.Options) *SolveHandler {
	return &SolveHandler{defaults: defaults}
}

// Defaults returns the options used for requests without their own.
func (h *SolveHandler) Defaults() rig.Options {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.defaults
}

// SetDefaults replaces the options used for requests without their own.
func (h *SolveHandler) SetDefaults(opts rig.Options) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.defaults = opts
}

type solveRequest struct {
	landmark.Frame
	Options *rig.Options `json:"options,omitempty"`
}

// ServeHTTP handles POST /api/solve.
func (h *SolveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req solveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	opts := h.Defaults()
	if req.Options != nil {
		opts = *req.Options
	}

	res, err := rig.Solve(&req.Frame, opts)
	switch {
	case errors.Is(err, rig.ErrEmptyFrame):
		writeError(w, http.StatusBadRequest, "Frame has no landmarks")
	case rig.IsInputError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to solve frame")
	default:
		writeJSON(w, http.StatusOK, res)
	}
}
