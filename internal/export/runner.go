package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/abhinaya/internal/store"
)

// Result is the outcome of one exporter over one session.
type Result struct {
	Exporter string   `json:"exporter"`
	Files    []string `json:"files,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Runner exports recorded sessions with every discovered exporter. Each
// exporter writes under outDir/<session id>/<exporter name>.
type Runner struct {
	store    *store.Store
	manager  *Manager
	executor *Executor
	outDir   string
}

// NewRunner creates a Runner.
func NewRunner(st *store.Store, manager *Manager, executor *Executor, outDir string) *Runner {
	return &Runner{
		store:    st,
		manager:  manager,
		executor: executor,
		outDir:   outDir,
	}
}

// Manager returns the exporter manager.
func (r *Runner) Manager() *Manager {
	return r.manager
}

// Export loads the session and runs every exporter over it. Exporter
// failures are reported per result; the error covers loading the session.
func (r *Runner) Export(ctx context.Context, sessionID string) ([]Result, error) {
	sess, err := r.store.Sessions().GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	frames, err := r.store.Frames().GetBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("load frames: %w", err)
	}

	req := Request{
		Session: SessionInfo{
			ID:        sess.ID,
			Name:      sess.Name,
			Source:    sess.Source.String(),
			CreatedAt: sess.CreatedAt.UTC().Format(time.RFC3339),
		},
		Frames: make([]Frame, len(frames)),
	}
	for i, f := range frames {
		req.Frames[i] = Frame{Sequence: f.Sequence, TimestampMs: f.TimestampMs, Rig: f.Data}
	}

	exporters := r.manager.List()
	results := make([]Result, 0, len(exporters))
	for _, ex := range exporters {
		res := Result{Exporter: ex.Manifest.Name}

		req.OutputDir = filepath.Join(r.outDir, sessionID, ex.Manifest.Name)
		if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
			res.Error = err.Error()
			results = append(results, res)
			continue
		}

		resp, err := r.executor.Run(ctx, ex, &req)
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Files = resp.Files
		}
		results = append(results, res)
	}

	return results, nil
}
