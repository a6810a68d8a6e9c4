// Package server provides the HTTP server: the solve and recording APIs,
// the live rig WebSocket and the camera preview stream.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/abhinaya/internal/export"
	"github.com/ayusman/abhinaya/internal/rig"
	"github.com/ayusman/abhinaya/internal/server/api"
	"github.com/ayusman/abhinaya/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	// Rig holds the solver defaults for /api/solve.
	Rig rig.Options
	// Hub serves /api/rig when set.
	Hub *RigHub
	// Stream serves /api/stream when set.
	Stream *StreamHandler
	// Exporter serves /api/sessions/{id}/export when set.
	Exporter *export.Runner
	// Recorder serves /api/recording when set.
	Recorder api.Recorder
	// OnRigOptions is called with the options produced by a settings update.
	OnRigOptions func(rig.Options)
}

// Server represents the HTTP server for the application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	solve := api.NewSolveHandler(s.config.Rig)
	s.mux.Handle("/api/solve", solve)

	if s.config.Store != nil {
		sessions := api.NewSessionHandler(s.config.Store, s.config.Exporter)
		s.mux.Handle("/api/sessions", sessions)
		s.mux.Handle("/api/sessions/", sessions)
		s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.Store, s.config.Rig, func(opts rig.Options) {
			solve.SetDefaults(opts)
			if s.config.OnRigOptions != nil {
				s.config.OnRigOptions(opts)
			}
		}))
	}

	if s.config.Recorder != nil {
		s.mux.Handle("/api/recording", api.NewRecordingHandler(s.config.Recorder))
	}

	if s.config.Hub != nil {
		s.mux.Handle("/api/rig", s.config.Hub)
	}

	if s.config.Stream != nil {
		s.mux.Handle("/api/stream", s.config.Stream)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}
	if s.config.Hub != nil {
		response["rig_clients"] = s.config.Hub.Clients()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
