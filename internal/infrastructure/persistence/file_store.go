package persistence

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/958877748/Filtration/internal/domain/filter"
	"github.com/958877748/Filtration/internal/ports"
	"github.com/958877748/Filtration/internal/translator"
	filtrationerrors "github.com/958877748/Filtration/pkg/errors"
)

const defaultFileMode os.FileMode = 0o644

// FileStore implements ports.ScriptStore on the local filesystem. Files are
// read as UTF-8, UTF-16 (by BOM) or Windows-1252 and always written as UTF-8.
type FileStore struct {
	logger ports.Logger
	now    func() time.Time
}

// NewFileStore constructs a FileStore.
func NewFileStore(logger ports.Logger) *FileStore {
	return &FileStore{logger: logger, now: time.Now}
}

// Load reads and parses the script at path.
func (s *FileStore) Load(ctx context.Context, path string) (*filter.Script, error) {
	if err := contextCheck(ctx, "load"); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "loading script", "path", path)

	info, err := os.Stat(path)
	if err != nil {
		s.logger.Error(ctx, "script stat failed", "path", path, "error", err)
		return nil, filtrationerrors.NewPersistenceError("read", path, err)
	}
	if info.IsDir() {
		return nil, filtrationerrors.NewPersistenceError("read", path, errors.New("path is a directory"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error(ctx, "script read failed", "path", path, "error", err)
		return nil, filtrationerrors.NewPersistenceError("read", path, err)
	}

	text, err := decodeContent(data)
	if err != nil {
		return nil, filtrationerrors.NewPersistenceError("decode", path, err)
	}

	script, err := translator.ParseScript(text)
	if err != nil {
		var parseErr *filtrationerrors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
		}
		s.logger.Error(ctx, "script parse failed", "path", path, "error", err)
		return nil, err
	}

	script.FilePath = path
	script.DateModified = info.ModTime()

	s.logger.Info(ctx, "script loaded", "path", path, "blocks", len(script.Blocks))
	return script, nil
}

// Save serializes the script and replaces script.FilePath atomically.
func (s *FileStore) Save(ctx context.Context, script *filter.Script) error {
	if err := contextCheck(ctx, "save"); err != nil {
		return err
	}
	if script.FilePath == "" {
		return filtrationerrors.NewPersistenceError("write", "", errors.New("script has no file path"))
	}

	path := script.FilePath
	perm := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := writeFileAtomic(path, []byte(translator.SerializeScript(script)), perm); err != nil {
		s.logger.Error(ctx, "script write failed", "path", path, "error", err)
		return filtrationerrors.NewPersistenceError("write", path, err)
	}

	script.DateModified = s.now()
	s.logger.Info(ctx, "script saved", "path", path, "blocks", len(script.Blocks))
	return nil
}

var _ ports.ScriptStore = (*FileStore)(nil)

// decodeContent honours a UTF-8 or UTF-16 byte order mark and falls back to
// Windows-1252 for bytes that are not valid UTF-8.
func decodeContent(data []byte) (string, error) {
	fallback := unicode.UTF8.NewDecoder()
	if !utf8.Valid(data) && !hasUTF16BOM(data) {
		fallback = charmap.Windows1252.NewDecoder()
	}

	reader := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(fallback))
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".filtration-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}

func contextCheck(ctx context.Context, op string) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return filter.NewDomainError(filter.ErrCodeCancelled, op+" cancelled", err, nil)
	}
	return nil
}
