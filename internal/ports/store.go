package ports

import (
	"context"

	"github.com/958877748/Filtration/internal/domain/filter"
)

// ScriptStore loads and persists filter scripts. Implementations must
// respect context cancellation before touching the filesystem and report
// failures as *errors.PersistenceError (I/O) or *errors.ParseError (content).
//
// Save writes script.FilePath and refreshes script.DateModified on success.
// It never validates; callers run Script.Validate first.
type ScriptStore interface {
	Load(ctx context.Context, path string) (*filter.Script, error)
	Save(ctx context.Context, script *filter.Script) error
}

// Clipboard exchanges block text with other scripts or applications. An
// empty clipboard reads as "" with a nil error.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}
