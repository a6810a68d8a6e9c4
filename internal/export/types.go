// Package export runs external exporters over recorded sessions. An
// exporter is an executable that reads a Request on stdin and writes a
// Response on stdout.
package export

import "encoding/json"

// ManifestFile is the file each exporter directory must contain.
const ManifestFile = "exporter.json"

// Manifest describes an exporter.
type Manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Executable  string `json:"executable"`
	// Format names the output, for example "jsonl" or "bvh".
	Format string `json:"format"`
}

// SessionInfo identifies the recording being exported.
type SessionInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
}

// Frame is one recorded rig frame.
type Frame struct {
	Sequence    int             `json:"sequence"`
	TimestampMs int64           `json:"timestamp_ms"`
	Rig         json.RawMessage `json:"rig"`
}

// Request is written to the exporter's stdin.
type Request struct {
	Session SessionInfo `json:"session"`
	Frames  []Frame     `json:"frames"`
	// OutputDir is where the exporter should write its files.
	OutputDir string `json:"output_dir"`
}

// Response is read from the exporter's stdout.
type Response struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Files   []string `json:"files,omitempty"`
}

// Exporter is a discovered exporter with its manifest and location.
type Exporter struct {
	Manifest   Manifest
	Path       string
	Executable string
}
