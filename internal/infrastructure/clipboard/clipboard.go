// Package clipboard provides ports.Clipboard implementations. The file
// clipboard lets separate CLI invocations exchange blocks; the memory
// clipboard backs the terminal browser and tests.
package clipboard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/958877748/Filtration/internal/ports"
	filtrationerrors "github.com/958877748/Filtration/pkg/errors"
)

// File stores clipboard text in a single file.
type File struct {
	path string
}

// NewFile returns a clipboard backed by path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file.
func (f *File) Path() string {
	return f.path
}

// ReadText implements ports.Clipboard. A missing file reads as empty.
func (f *File) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", filtrationerrors.NewPersistenceError("read clipboard", f.path, err)
	}
	return string(data), nil
}

// WriteText implements ports.Clipboard.
func (f *File) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return filtrationerrors.NewPersistenceError("write clipboard", f.path, err)
	}
	if err := os.WriteFile(f.path, []byte(text), 0o600); err != nil {
		return filtrationerrors.NewPersistenceError("write clipboard", f.path, err)
	}
	return nil
}

// Memory keeps clipboard text in process.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadText implements ports.Clipboard.
func (m *Memory) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// WriteText implements ports.Clipboard.
func (m *Memory) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

var (
	_ ports.Clipboard = (*File)(nil)
	_ ports.Clipboard = (*Memory)(nil)
)
