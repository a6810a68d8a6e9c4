// Command jsonl is an exporter that writes a recorded session as JSON
// Lines: a header line with the session, then one line per rig frame.
//
// Build it next to its manifest:
//
//	go build -o ~/.abhinaya/exporters/jsonl/jsonl ./exporters/jsonl
//	cp exporters/jsonl/exporter.json ~/.abhinaya/exporters/jsonl/
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ayusman/abhinaya/internal/export"
)

func main() {
	var req export.Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(export.Response{Error: fmt.Sprintf("failed to decode request: %v", err)})
		return
	}

	name, err := writeSession(&req)
	if err != nil {
		writeResponse(export.Response{Error: err.Error()})
		return
	}
	writeResponse(export.Response{Success: true, Files: []string{name}})
}

// writeSession writes req into its output directory and returns the file
// name.
func writeSession(req *export.Request) (string, error) {
	if req.OutputDir == "" {
		return "", fmt.Errorf("no output directory")
	}

	name := fileName(req.Session)
	f, err := os.Create(filepath.Join(req.OutputDir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := encode(f, req); err != nil {
		return "", err
	}
	return name, f.Close()
}

func encode(w io.Writer, req *export.Request) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	if err := enc.Encode(req.Session); err != nil {
		return err
	}
	for _, frame := range req.Frames {
		if err := enc.Encode(frame); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// fileName derives a safe file name from the session name, falling back to
// its ID.
func fileName(s export.SessionInfo) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, s.Name)
	if base == "" {
		base = s.ID
	}
	return base + ".jsonl"
}

func writeResponse(resp export.Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}
