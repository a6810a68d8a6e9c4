package api

import (
	"errors"
	"net/http"

	"github.com/ayusman/abhinaya/internal/config"
	"github.com/ayusman/abhinaya/internal/rig"
	"github.com/ayusman/abhinaya/internal/store"
)

// SettingsHandler reads and writes application settings. Settings that
// shape the rig are validated against the base options and, once stored,
// handed to the apply callback.
type SettingsHandler struct {
	store *store.Store
	base  rig.Options
	apply func(rig.Options)
}

// NewSettingsHandler creates a new SettingsHandler. base holds the options
// the stored settings are overlaid on; apply may be nil.
func NewSettingsHandler(s *store.Store, base rig.Options, apply func(rig.Options)) *SettingsHandler {
	return &SettingsHandler{store: s, base: base, apply: apply}
}

// ServeHTTP handles GET and PUT /api/settings. PUT merges the posted keys
// into the stored settings and returns the full set.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPut:
		if !h.put(w, r) {
			return
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	settings, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// put validates and stores the posted settings. It reports whether the
// request succeeded; on failure the response has been written.
func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request) bool {
	var req map[string]string
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}

	merged, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return false
	}
	for k, v := range req {
		if k == "" {
			writeError(w, http.StatusBadRequest, "Empty setting key")
			return false
		}
		merged[k] = v
	}

	opts, err := config.ApplySettings(h.base, merged)
	if errors.Is(err, config.ErrInvalidSetting) || errors.Is(err, config.ErrBlinkBand) {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to apply settings")
		return false
	}

	for k, v := range req {
		if err := h.store.Settings().Set(k, v); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return false
		}
	}

	if h.apply != nil {
		h.apply(opts)
	}
	return true
}
