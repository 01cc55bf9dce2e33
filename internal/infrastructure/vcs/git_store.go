package vcs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/958877748/Filtration/internal/domain/filter"
	"github.com/958877748/Filtration/internal/ports"
)

// ErrNotInRepository is returned by Snapshot when the script does not live
// inside a git working tree.
var ErrNotInRepository = errors.New("script is not inside a git repository")

// ErrOtherChangesStaged is returned by Snapshot when the index already holds
// staged changes to other files. Those changes are left for the user to
// commit.
var ErrOtherChangesStaged = errors.New("other changes are staged")

// Author identifies the committer of save snapshots.
type Author struct {
	Name  string
	Email string
}

// GitStore decorates a ScriptStore and commits every successful save to the
// git repository enclosing the script. A failed snapshot is logged and never
// fails the save.
type GitStore struct {
	inner  ports.ScriptStore
	author Author
	logger ports.Logger
	now    func() time.Time
}

// NewGitStore wraps inner.
func NewGitStore(inner ports.ScriptStore, author Author, logger ports.Logger) *GitStore {
	return &GitStore{inner: inner, author: author, logger: logger, now: time.Now}
}

// Load delegates to the wrapped store.
func (s *GitStore) Load(ctx context.Context, path string) (*filter.Script, error) {
	return s.inner.Load(ctx, path)
}

// Save delegates to the wrapped store, then snapshots the file.
func (s *GitStore) Save(ctx context.Context, script *filter.Script) error {
	if err := s.inner.Save(ctx, script); err != nil {
		return err
	}

	hash, err := s.Snapshot(ctx, script.FilePath)
	switch {
	case errors.Is(err, ErrNotInRepository):
		s.logger.Debug(ctx, "script outside git repository, snapshot skipped", "path", script.FilePath)
	case errors.Is(err, ErrOtherChangesStaged):
		s.logger.Warn(ctx, "git snapshot skipped, other changes are staged", "path", script.FilePath, "error", err)
	case err != nil:
		s.logger.Warn(ctx, "git snapshot failed", "path", script.FilePath, "error", err)
	case hash.IsZero():
		s.logger.Debug(ctx, "script unchanged, nothing to commit", "path", script.FilePath)
	default:
		s.logger.Info(ctx, "git snapshot committed", "path", script.FilePath, "commit", hash.String())
	}
	return nil
}

// Snapshot stages path and commits it. It returns the zero hash when the
// file has no staged changes, and ErrOtherChangesStaged without staging
// anything when another file already has staged changes.
func (s *GitStore) Snapshot(ctx context.Context, path string) (plumbing.Hash, error) {
	if err := ctx.Err(); err != nil {
		return plumbing.ZeroHash, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return plumbing.ZeroHash, ErrNotInRepository
		}
		return plumbing.ZeroHash, fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("open worktree: %w", err)
	}

	root := wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	rel = filepath.ToSlash(rel)

	before, err := wt.Status()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("status: %w", err)
	}
	for file, fileStatus := range before {
		if file != rel && fileStatus.Staging != git.Unmodified && fileStatus.Staging != git.Untracked {
			return plumbing.ZeroHash, fmt.Errorf("%w: %s", ErrOtherChangesStaged, file)
		}
	}

	if _, err := wt.Add(rel); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("stage %s: %w", rel, err)
	}

	status, err := wt.Status()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("status: %w", err)
	}
	if fileStatus, ok := status[rel]; !ok || fileStatus.Staging == git.Unmodified {
		return plumbing.ZeroHash, nil
	}

	hash, err := wt.Commit(fmt.Sprintf("Update %s", filepath.Base(abs)), &git.CommitOptions{
		Author: &object.Signature{
			Name:  s.author.Name,
			Email: s.author.Email,
			When:  s.now(),
		},
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("commit: %w", err)
	}
	return hash, nil
}

var _ ports.ScriptStore = (*GitStore)(nil)
