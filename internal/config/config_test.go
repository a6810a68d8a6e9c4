package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/abhinaya/internal/capture"
	"github.com/ayusman/abhinaya/internal/landmark"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ABHINAYA_DATA_DIR", "/tmp/abhinaya-data")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected addr :8080, got %q", cfg.Addr)
	}
	if cfg.FPS != 30 {
		t.Errorf("expected 30 fps, got %d", cfg.FPS)
	}
	if cfg.Tray {
		t.Error("expected tray off by default")
	}
	if cfg.IdleTimeout != 30*time.Second {
		t.Errorf("expected 30s idle timeout, got %s", cfg.IdleTimeout)
	}
	if cfg.DBPath() != filepath.Join("/tmp/abhinaya-data", "abhinaya.db") {
		t.Errorf("unexpected db path %q", cfg.DBPath())
	}
	if cfg.ExporterDir != filepath.Join("/tmp/abhinaya-data", "exporters") {
		t.Errorf("unexpected exporter dir %q", cfg.ExporterDir)
	}
	if cfg.ExportDir() != filepath.Join("/tmp/abhinaya-data", "exports") {
		t.Errorf("unexpected export dir %q", cfg.ExportDir())
	}
	if got := cfg.CaptureOptions(); got != (capture.Options{Device: "0", Width: 640, Height: 480, FPS: 30, Loop: true}) {
		t.Errorf("unexpected capture options %+v", got)
	}
	if cfg.ExportTimeout != time.Minute {
		t.Errorf("expected 60s export timeout, got %s", cfg.ExportTimeout)
	}

	opts, err := cfg.RigOptions()
	if err != nil {
		t.Fatalf("rig options: %v", err)
	}
	if opts.Face.Source != landmark.SourceMediaPipe || opts.Pose.Source != landmark.SourceMediaPipe {
		t.Errorf("expected mediapipe source, got %s / %s", opts.Face.Source, opts.Pose.Source)
	}
	if !opts.Face.SmoothBlink || !opts.Pose.EnableLegs {
		t.Errorf("expected smooth blink and legs on, got %+v", opts)
	}
	if opts.Face.BlinkSettings != nil {
		t.Errorf("expected no blink override, got %+v", opts.Face.BlinkSettings)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ABHINAYA_DATA_DIR", "/tmp/abhinaya-data")
	t.Setenv("ABHINAYA_SOURCE", "tfjs")
	t.Setenv("ABHINAYA_BLINK_LOW", "0.4")
	t.Setenv("ABHINAYA_BLINK_HIGH", "0.7")
	t.Setenv("ABHINAYA_ENABLE_LEGS", "false")
	t.Setenv("ABHINAYA_MODEL_COMPLEXITY", "2")
	t.Setenv("ABHINAYA_EXPORTER_DIR", "/opt/exporters")
	t.Setenv("ABHINAYA_CAMERA", "/videos/alarippu.mp4")
	t.Setenv("ABHINAYA_LOOP_VIDEO", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	opts, _ := cfg.RigOptions()
	if opts.Face.Source != landmark.SourceTFJS {
		t.Errorf("expected tfjs source, got %s", opts.Face.Source)
	}
	if opts.Pose.EnableLegs {
		t.Error("expected legs off")
	}
	if b := opts.Face.BlinkSettings; b == nil || b.Low != 0.4 || b.High != 0.7 {
		t.Errorf("expected blink band 0.4-0.7, got %+v", b)
	}
	if dc := cfg.DetectorConfig(); dc.ModelComplexity != 2 || !dc.RefineFace {
		t.Errorf("unexpected detector config %+v", dc)
	}
	if cfg.ExporterDir != "/opt/exporters" {
		t.Errorf("expected exporter dir override, got %q", cfg.ExporterDir)
	}
	if co := cfg.CaptureOptions(); co.Device != "/videos/alarippu.mp4" || co.Loop {
		t.Errorf("expected a single pass over the video file, got %+v", co)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want error
	}{
		{"half blink band", map[string]string{"ABHINAYA_BLINK_LOW": "0.4"}, ErrBlinkBand},
		{"inverted blink band", map[string]string{"ABHINAYA_BLINK_LOW": "0.8", "ABHINAYA_BLINK_HIGH": "0.2"}, ErrBlinkBand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ABHINAYA_DATA_DIR", "/tmp/abhinaya-data")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	t.Run("unknown source", func(t *testing.T) {
		t.Setenv("ABHINAYA_DATA_DIR", "/tmp/abhinaya-data")
		t.Setenv("ABHINAYA_SOURCE", "kinect")
		if _, err := Load(); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("malformed number", func(t *testing.T) {
		t.Setenv("ABHINAYA_FPS", "fast")
		_, err := Load()
		if err == nil || !strings.Contains(err.Error(), "parse env:") {
			t.Errorf("expected parse env error, got %v", err)
		}
	})
}
