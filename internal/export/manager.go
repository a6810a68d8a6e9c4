package export

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrExporterNotFound is returned when a requested exporter cannot be found.
var ErrExporterNotFound = errors.New("exporter not found")

// Manager discovers exporters in a directory.
type Manager struct {
	dir       string
	exporters map[string]*Exporter
	mu        sync.RWMutex
}

// NewManager creates a Manager for the given directory.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:       dir,
		exporters: make(map[string]*Exporter),
	}
}

// Discover scans each subdirectory for an exporter.json manifest. A missing
// directory yields no exporters; unreadable manifests are skipped.
func (m *Manager) Discover() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.exporters = make(map[string]*Exporter)

	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		path := filepath.Join(m.dir, entry.Name())
		data, err := os.ReadFile(filepath.Join(path, ManifestFile))
		if err != nil {
			continue
		}

		var manifest Manifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			log.Printf("Skipping exporter %s: %v", entry.Name(), err)
			continue
		}
		if manifest.Name == "" || manifest.Executable == "" {
			log.Printf("Skipping exporter %s: manifest needs name and executable", entry.Name())
			continue
		}

		m.exporters[manifest.Name] = &Exporter{
			Manifest:   manifest,
			Path:       path,
			Executable: filepath.Join(path, manifest.Executable),
		}
	}

	return nil
}

// Get returns an exporter by name.
func (m *Manager) Get(name string) (*Exporter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ex, ok := m.exporters[name]
	if !ok {
		return nil, ErrExporterNotFound
	}
	return ex, nil
}

// List returns the discovered exporters sorted by name.
func (m *Manager) List() []*Exporter {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Exporter, 0, len(m.exporters))
	for _, ex := range m.exporters {
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Manifest.Name < out[j].Manifest.Name })
	return out
}

// Dir returns the exporter directory.
func (m *Manager) Dir() string {
	return m.dir
}
