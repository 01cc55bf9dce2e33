// Package registry keeps the list of recently opened filter scripts in
// ~/.filtration/recent.json.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const (
	fileVersion = "1.0"
	// DefaultLimit is the number of entries kept when none is configured.
	DefaultLimit = 20
	// FileName is the registry file inside the settings directory.
	FileName = "recent.json"
)

// Entry describes one recently opened script.
type Entry struct {
	Path        string    `json:"path"`
	Description string    `json:"description,omitempty"`
	Blocks      int       `json:"blocks"`
	Sections    int       `json:"sections"`
	OpenedAt    time.Time `json:"opened_at"`
}

// File is the on-disk layout.
type File struct {
	Version string  `json:"version"`
	Entries []Entry `json:"entries"`
}

// Registry manages the recent-scripts list.
type Registry struct {
	path    string
	limit   int
	mu      sync.RWMutex
	entries []Entry
}

// NewRegistry loads the registry at path. A missing file starts empty.
func NewRegistry(path string, limit int) (*Registry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	r := &Registry{path: path, limit: limit}

	if err := r.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		r.entries = []Entry{}
	}

	return r, nil
}

// Load reads the registry from disk.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return err
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse registry %s: %w", r.path, err)
	}

	r.entries = file.Entries
	r.sortAndTrim()
	return nil
}

// Save writes the registry to disk atomically.
func (r *Registry) Save() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := json.MarshalIndent(File{Version: fileVersion, Entries: r.entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// List returns the entries, most recently opened first.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Entry, len(r.entries))
	copy(result, r.entries)
	return result
}

// Touch records entry, replacing any previous entry for the same path.
func (r *Registry) Touch(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if abs, err := filepath.Abs(entry.Path); err == nil {
		entry.Path = abs
	}
	if entry.OpenedAt.IsZero() {
		entry.OpenedAt = time.Now()
	}

	for i, existing := range r.entries {
		if existing.Path == entry.Path {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
	r.entries = append(r.entries, entry)
	r.sortAndTrim()
}

// Forget removes path from the registry.
func (r *Registry) Forget(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	for i, entry := range r.entries {
		if entry.Path == path {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("script not in recent list: %s", path)
}

func (r *Registry) sortAndTrim() {
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].OpenedAt.After(r.entries[j].OpenedAt)
	})
	if len(r.entries) > r.limit {
		r.entries = r.entries[:r.limit]
	}
}
