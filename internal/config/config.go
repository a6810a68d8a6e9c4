// Package config loads the application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ayusman/abhinaya/internal/capture"
	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/face"
	"github.com/ayusman/abhinaya/internal/landmark"
	"github.com/ayusman/abhinaya/internal/rig"
)

// ErrBlinkBand is returned when only one end of the blink band is set, or
// the band is empty.
var ErrBlinkBand = errors.New("config: blink band needs low < high")

// Config is the process configuration.
type Config struct {
	Addr     string `env:"ABHINAYA_ADDR"      envDefault:":8080"`
	DataDir  string `env:"ABHINAYA_DATA_DIR"`
	WebDir   string `env:"ABHINAYA_WEB_DIR"`
	Tray     bool   `env:"ABHINAYA_TRAY"      envDefault:"false"`
	FPS      int    `env:"ABHINAYA_FPS"       envDefault:"30"`

	// Camera is a device index or a video file to replay.
	Camera       string `env:"ABHINAYA_CAMERA"        envDefault:"0"`
	CameraWidth  int    `env:"ABHINAYA_CAMERA_WIDTH"  envDefault:"640"`
	CameraHeight int    `env:"ABHINAYA_CAMERA_HEIGHT" envDefault:"480"`
	LoopVideo    bool   `env:"ABHINAYA_LOOP_VIDEO"    envDefault:"true"`

	// StillThreshold is the changed-pixel percentage a frame needs to be
	// detected again. Zero detects every frame.
	StillThreshold float64 `env:"ABHINAYA_STILL_THRESHOLD" envDefault:"0"`

	Source          string        `env:"ABHINAYA_SOURCE"           envDefault:"mediapipe"`
	SmoothBlink     bool          `env:"ABHINAYA_SMOOTH_BLINK"     envDefault:"true"`
	BlinkLow        *float64      `env:"ABHINAYA_BLINK_LOW"`
	BlinkHigh       *float64      `env:"ABHINAYA_BLINK_HIGH"`
	EnableLegs      bool          `env:"ABHINAYA_ENABLE_LEGS"      envDefault:"true"`
	ModelComplexity int           `env:"ABHINAYA_MODEL_COMPLEXITY" envDefault:"1"`
	IdleTimeout     time.Duration `env:"ABHINAYA_IDLE_TIMEOUT"     envDefault:"30s"`

	// ExporterDir holds one subdirectory per exporter; empty means
	// DataDir/exporters.
	ExporterDir   string        `env:"ABHINAYA_EXPORTER_DIR"`
	ExportTimeout time.Duration `env:"ABHINAYA_EXPORT_TIMEOUT" envDefault:"60s"`
}

// Load parses the environment and fills in the data directory.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".abhinaya")
	}
	if cfg.ExporterDir == "" {
		cfg.ExporterDir = filepath.Join(cfg.DataDir, "exporters")
	}

	if _, err := cfg.RigOptions(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DBPath returns the SQLite database location.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "abhinaya.db")
}

// ExportDir returns where exporters write their output.
func (c Config) ExportDir() string {
	return filepath.Join(c.DataDir, "exports")
}

// RigOptions builds the solver options.
func (c Config) RigOptions() (rig.Options, error) {
	src, err := landmark.ParseSource(c.Source)
	if err != nil {
		return rig.Options{}, err
	}

	opts := rig.DefaultOptions().WithSource(src)
	opts.Face.SmoothBlink = c.SmoothBlink
	opts.Pose.EnableLegs = c.EnableLegs

	switch {
	case c.BlinkLow == nil && c.BlinkHigh == nil:
	case c.BlinkLow == nil || c.BlinkHigh == nil || *c.BlinkLow >= *c.BlinkHigh:
		return rig.Options{}, ErrBlinkBand
	default:
		opts.Face.BlinkSettings = &face.Thresholds{Low: *c.BlinkLow, High: *c.BlinkHigh}
	}
	return opts, nil
}

// CaptureOptions builds the capture source options.
func (c Config) CaptureOptions() capture.Options {
	return capture.Options{
		Device: c.Camera,
		Width:  c.CameraWidth,
		Height: c.CameraHeight,
		FPS:    c.FPS,
		Loop:   c.LoopVideo,
	}
}

// DetectorConfig builds the holistic detector configuration.
func (c Config) DetectorConfig() detector.Config {
	cfg := detector.DefaultConfig()
	cfg.ModelComplexity = c.ModelComplexity
	cfg.IdleTimeout = c.IdleTimeout
	return cfg
}
