package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrExportFailed is returned when an exporter reports failure.
var ErrExportFailed = errors.New("export failed")

// Executor runs exporters with a timeout.
type Executor struct {
	timeout time.Duration
}

// NewExecutor creates an Executor that kills exporters running longer than
// timeout.
func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{timeout: timeout}
}

// Run sends req to the exporter on stdin and parses its stdout. A response
// with Success false is returned together with ErrExportFailed.
func (e *Executor) Run(ctx context.Context, ex *Exporter, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	cmd := exec.CommandContext(ctx, ex.Executable)
	cmd.Dir = ex.Path
	cmd.Stdin = bytes.NewReader(body)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("exporter %s timed out after %s", ex.Manifest.Name, e.timeout)
	}
	if err != nil {
		if s := stderr.String(); s != "" {
			return nil, fmt.Errorf("exporter %s: %w, stderr: %s", ex.Manifest.Name, err, s)
		}
		return nil, fmt.Errorf("exporter %s: %w", ex.Manifest.Name, err)
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("parse exporter response: %w, stdout: %s", err, stdout.String())
	}
	if !resp.Success {
		return &resp, fmt.Errorf("%w: %s: %s", ErrExportFailed, ex.Manifest.Name, resp.Error)
	}
	return &resp, nil
}
