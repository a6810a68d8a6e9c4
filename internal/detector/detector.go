// Package detector runs a holistic landmark model over camera frames.
package detector

import (
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/landmark"
)

// Detector defines the interface for holistic landmark detection.
type Detector interface {
	// Detect analyzes a video frame and returns the landmarks of every body
	// part found. Parts that were not found are empty.
	Detect(frame *gocv.Mat) (*landmark.Frame, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for holistic detection.
type Config struct {
	// ModelComplexity selects the pose model: 0, 1 or 2 (default: 1).
	ModelComplexity int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// RefineFace adds the ten iris landmarks to the face mesh. Eye, pupil
	// and brow tracking need them.
	RefineFace bool

	// IdleTimeout stops the model process after this long without frames.
	IdleTimeout time.Duration
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		ModelComplexity: 1,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
		RefineFace:      true,
		IdleTimeout:     30 * time.Second,
	}
}
