package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeExporter creates dir/name with a manifest and a shell script body.
func writeExporter(t *testing.T, dir, name, script string) *Exporter {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("failed to create exporter dir: %v", err)
	}

	manifest := Manifest{Name: name, Version: "1.0.0", Executable: "run.sh", Format: "test"}
	data, _ := json.Marshal(manifest)
	if err := os.WriteFile(filepath.Join(path, ManifestFile), data, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	exe := filepath.Join(path, "run.sh")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	return &Exporter{Manifest: manifest, Path: path, Executable: exe}
}
