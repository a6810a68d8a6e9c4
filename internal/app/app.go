// Package app runs the capture pipeline: camera frames go through the
// holistic detector and the rig tracker, and the solved rig is broadcast and
// optionally recorded.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/capture"
	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/export"
	"github.com/ayusman/abhinaya/internal/rig"
	"github.com/ayusman/abhinaya/internal/store"
)

// ErrNoStore is returned when recording is requested without a store.
var ErrNoStore = errors.New("app: no store configured")

// Config holds configuration options for the application.
type Config struct {
	Store *store.Store
	// Camera selects the capture source.
	Camera capture.Options
	// FPS is the pipeline rate; zero uses capture.DefaultFPS.
	FPS int
	Rig rig.Options
	// StillThreshold enables the still-scene gate when positive.
	StillThreshold float64
	Detector       detector.Config
	// Exporter, when set, runs over each session as its recording stops.
	Exporter *export.Runner
}

// App is the main application that orchestrates capture, detection and
// rig solving.
type App struct {
	config   Config
	camera   capture.Camera
	gate     *capture.StillGate
	detector detector.Detector
	tracker  *rig.Tracker

	enabled    bool
	rigDirty   bool
	session    string
	recStarted time.Time
	last       *rig.Result
	onResult   []func(*rig.Result)
	onFrame    []func(*gocv.Mat)

	mu      sync.RWMutex
	exports sync.WaitGroup
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.FPS <= 0 {
		config.FPS = capture.DefaultFPS
	}

	a := &App{
		config:  config,
		camera:  capture.NewCamera(config.Camera),
		tracker: rig.NewTracker(config.Rig),
	}
	if config.StillThreshold > 0 {
		a.gate = capture.NewStillGate(config.StillThreshold, 0)
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe holistic detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables tracking.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the landmark detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the landmark detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// SetCamera replaces the camera. It must be called before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// RigOptions returns the solver options in use.
func (a *App) RigOptions() rig.Options {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config.Rig
}

// SetRigOptions replaces the solver options from the next frame on.
func (a *App) SetRigOptions(opts rig.Options) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.config.Rig = opts
	a.rigDirty = true
}

// OnResult registers fn to receive every solved frame. Callbacks run on the
// pipeline goroutine and must not block.
func (a *App) OnResult(fn func(*rig.Result)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onResult = append(a.onResult, fn)
}

// OnFrame registers fn to receive every captured frame before detection.
// The frame is closed after the callbacks return.
func (a *App) OnFrame(fn func(*gocv.Mat)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onFrame = append(a.onFrame, fn)
}

// StartRecording creates a session and appends every solved frame to it
// until StopRecording. It returns the session ID.
func (a *App) StartRecording(name string) (string, error) {
	if a.config.Store == nil {
		return "", ErrNoStore
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != "" {
		return a.session, nil
	}

	if name == "" {
		name = "Session " + time.Now().Format("2006-01-02 15:04:05")
	}
	sess := &store.Session{
		ID:     uuid.New().String(),
		Name:   name,
		Source: a.config.Rig.Face.Source,
	}
	if err := a.config.Store.Sessions().Create(sess); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	a.session = sess.ID
	a.recStarted = time.Now()
	log.Printf("Recording session %q (%s)", sess.Name, sess.ID)
	return sess.ID, nil
}

// StopRecording ends the current recording and returns its session ID, or
// an empty string when nothing was being recorded.
func (a *App) StopRecording() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.session
	a.session = ""
	if id == "" {
		return ""
	}
	log.Printf("Recording stopped (%s)", id)

	if a.config.Exporter != nil {
		a.exports.Add(1)
		go a.runExport(id)
	}
	return id
}

func (a *App) runExport(sessionID string) {
	defer a.exports.Done()

	results, err := a.config.Exporter.Export(context.Background(), sessionID)
	if err != nil {
		log.Printf("Error exporting session %s: %v", sessionID, err)
		return
	}
	for _, r := range results {
		if r.Error != "" {
			log.Printf("Exporter %s failed for %s: %s", r.Exporter, sessionID, r.Error)
			continue
		}
		log.Printf("Exporter %s wrote %d files for %s", r.Exporter, len(r.Files), sessionID)
	}
}

// Recording returns the ID of the session being recorded, if any.
func (a *App) Recording() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// Start opens the camera and begins the pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(a.config.FPS)

	a.tracker.Reset()
	a.last = nil
	if a.gate != nil {
		a.gate.Reset()
	}

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.runPipeline(a.stopCh, a.doneCh)

	log.Printf("Tracking pipeline started at %d FPS", a.config.FPS)
	return nil
}

// Stop halts the pipeline and releases the camera. The detector stays
// usable for a later Start; Close releases it.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, doneCh := a.stopCh, a.doneCh
	a.stopCh, a.doneCh = nil, nil
	a.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-doneCh

	if err := a.Camera().Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	log.Println("Tracking pipeline stopped")
}

// Close stops the pipeline, waits for running exports and releases the
// detector and gate.
func (a *App) Close() {
	a.Stop()
	a.exports.Wait()

	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}
	if a.gate != nil {
		a.gate.Close()
	}
}
