// Package script holds the application service that drives filter script
// documents: loading and saving through a ScriptStore, clipboard copy and
// paste, ordered mutations and color replacement.
package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/958877748/Filtration/internal/domain/filter"
	"github.com/958877748/Filtration/internal/logger"
	"github.com/958877748/Filtration/internal/ports"
	"github.com/958877748/Filtration/internal/translator"
	"github.com/958877748/Filtration/pkg/diff"
	filtrationerrors "github.com/958877748/Filtration/pkg/errors"
)

// ErrNoFilePath is returned by Save for a script that was never saved.
var ErrNoFilePath = errors.New("script has no file path, use save as")

// Direction selects one of the four move operations.
type Direction string

const (
	MoveTop    Direction = "top"
	MoveUp     Direction = "up"
	MoveDown   Direction = "down"
	MoveBottom Direction = "bottom"
)

// ParseDirection resolves a direction name.
func ParseDirection(value string) (Direction, error) {
	switch d := Direction(value); d {
	case MoveTop, MoveUp, MoveDown, MoveBottom:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction %q (want top, up, down or bottom)", value)
	}
}

// Service coordinates script use cases on top of the domain model.
type Service struct {
	store     ports.ScriptStore
	clipboard ports.Clipboard
	logger    ports.Logger
}

// NewService constructs a script service. A nil logger discards output.
func NewService(store ports.ScriptStore, clipboard ports.Clipboard, log ports.Logger) *Service {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Service{
		store:     store,
		clipboard: clipboard,
		logger:    log.With("component", "script_service"),
	}
}

// New returns an unsaved script holding one empty Show block.
func (s *Service) New(description string) *filter.Script {
	script := filter.NewScript()
	script.Description = description
	if _, err := script.AddBlock(nil); err != nil {
		panic(fmt.Sprintf("script: add first block: %v", err))
	}
	return script
}

// Open loads the script at path.
func (s *Service) Open(ctx context.Context, path string) (*filter.Script, error) {
	if err := contextCheck(ctx); err != nil {
		return nil, err
	}
	script, err := s.store.Load(ctx, path)
	if err != nil {
		s.logger.Error(ctx, "open failed", "path", path, "error", err)
		return nil, err
	}
	s.logger.Info(ctx, "script opened", "path", path, "blocks", len(script.Blocks))
	return script, nil
}

// Validate wraps Script.Validate failures into a ValidationError.
func (s *Service) Validate(script *filter.Script) error {
	if failures := script.Validate(); len(failures) > 0 {
		return filtrationerrors.NewValidationFailures("script", failures)
	}
	return nil
}

// Save validates and persists the script to its current FilePath. Nothing is
// written when validation fails.
func (s *Service) Save(ctx context.Context, script *filter.Script) error {
	if err := contextCheck(ctx); err != nil {
		return err
	}
	if err := s.Validate(script); err != nil {
		s.logger.Warn(ctx, "save refused, script is invalid", "path", script.FilePath, "error", err)
		return err
	}
	if script.FilePath == "" {
		return ErrNoFilePath
	}
	if err := s.store.Save(ctx, script); err != nil {
		s.logger.Error(ctx, "save failed", "path", script.FilePath, "error", err)
		return err
	}
	s.logger.Info(ctx, "script saved", "path", script.FilePath)
	return nil
}

// SaveAs saves the script under path. When the store fails the previous
// FilePath is restored.
func (s *Service) SaveAs(ctx context.Context, script *filter.Script, path string) error {
	if err := contextCheck(ctx); err != nil {
		return err
	}
	if err := s.Validate(script); err != nil {
		s.logger.Warn(ctx, "save as refused, script is invalid", "path", path, "error", err)
		return err
	}

	previous := script.FilePath
	script.FilePath = path
	if err := s.store.Save(ctx, script); err != nil {
		script.FilePath = previous
		s.logger.Error(ctx, "save as failed, file path restored", "path", path, "previous", previous, "error", err)
		return err
	}
	s.logger.Info(ctx, "script saved as", "path", path, "previous", previous)
	return nil
}

// Copy places the serialized block on the clipboard.
func (s *Service) Copy(ctx context.Context, block filter.Block) error {
	if err := contextCheck(ctx); err != nil {
		return err
	}
	if err := s.clipboard.WriteText(ctx, translator.SerializeBlock(block)); err != nil {
		s.logger.Error(ctx, "copy failed", "error", err)
		return err
	}
	s.logger.Debug(ctx, "block copied", "block_kind", string(block.Kind()))
	return nil
}

// Paste parses the clipboard and inserts the block after target, or appends
// it when target is nil. An empty or unparsable clipboard is logged and
// returns (nil, nil) without touching the script.
func (s *Service) Paste(ctx context.Context, script *filter.Script, target filter.Block) (filter.Block, error) {
	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	text, err := s.clipboard.ReadText(ctx)
	if err != nil {
		s.logger.Error(ctx, "clipboard read failed", "error", err)
		return nil, err
	}
	if text == "" {
		s.logger.Warn(ctx, "paste ignored, clipboard is empty")
		return nil, nil
	}

	block, err := translator.ParseBlock(text)
	if err != nil {
		s.logger.Warn(ctx, "paste ignored, clipboard does not hold a block", "error", err)
		return nil, nil
	}

	if err := script.InsertAfter(target, block); err != nil {
		s.logger.Error(ctx, "paste failed", "error", err)
		return nil, err
	}
	s.logger.Info(ctx, "block pasted", "block_kind", string(block.Kind()), "index", script.IndexOf(block))
	return block, nil
}

// AddBlock inserts a new Show block after target.
func (s *Service) AddBlock(ctx context.Context, script *filter.Script, target filter.Block) (*filter.RuleBlock, error) {
	if err := contextCheck(ctx); err != nil {
		return nil, err
	}
	block, err := script.AddBlock(target)
	if err != nil {
		s.logger.Error(ctx, "add block failed", "error", err)
		return nil, err
	}
	s.logger.Info(ctx, "block added", "index", script.IndexOf(block))
	return block, nil
}

// AddSection inserts a new section after target.
func (s *Service) AddSection(ctx context.Context, script *filter.Script, target filter.Block) (*filter.SectionBlock, error) {
	if err := contextCheck(ctx); err != nil {
		return nil, err
	}
	section, err := script.AddSection(target)
	if err != nil {
		s.logger.Error(ctx, "add section failed", "error", err)
		return nil, err
	}
	s.logger.Info(ctx, "section added", "index", script.IndexOf(section))
	return section, nil
}

// Move repositions block. A move at the boundary reports false without error.
func (s *Service) Move(ctx context.Context, script *filter.Script, block filter.Block, direction Direction) (bool, error) {
	if err := contextCheck(ctx); err != nil {
		return false, err
	}

	var move func(filter.Block) (bool, error)
	switch direction {
	case MoveTop:
		move = script.MoveToTop
	case MoveUp:
		move = script.MoveUp
	case MoveDown:
		move = script.MoveDown
	case MoveBottom:
		move = script.MoveToBottom
	default:
		return false, fmt.Errorf("unknown direction %q", direction)
	}

	moved, err := move(block)
	if err != nil {
		s.logger.Error(ctx, "move failed", "direction", string(direction), "error", err)
		return false, err
	}
	s.logger.Debug(ctx, "move applied", "direction", string(direction), "moved", moved, "index", script.IndexOf(block))
	return moved, nil
}

// Remove deletes block. Confirmation is the caller's concern.
func (s *Service) Remove(ctx context.Context, script *filter.Script, block filter.Block) error {
	if err := contextCheck(ctx); err != nil {
		return err
	}
	index := script.IndexOf(block)
	if err := script.Remove(block); err != nil {
		s.logger.Error(ctx, "remove failed", "error", err)
		return err
	}
	s.logger.Info(ctx, "block removed", "index", index, "block_kind", string(block.Kind()))
	return nil
}

// ReplaceColors applies request to the script and returns how many blocks changed.
func (s *Service) ReplaceColors(ctx context.Context, script *filter.Script, request filter.ColorReplaceRequest) (int, error) {
	if err := contextCheck(ctx); err != nil {
		return 0, err
	}
	changed := script.ReplaceColors(request)
	s.logger.Info(ctx, "colors replaced", "blocks_changed", changed, "kinds", fmt.Sprint(request.Enabled()))
	return changed, nil
}

// Preview describes what ReplaceColors would do without touching the script.
type Preview struct {
	Changed int
	Diff    string
	Stats   diff.Stats
}

// PreviewReplaceColors runs the replacement on a clone and diffs the result.
func (s *Service) PreviewReplaceColors(ctx context.Context, script *filter.Script, request filter.ColorReplaceRequest) (*Preview, error) {
	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	clone := script.Clone()
	changed := clone.ReplaceColors(request)

	before := translator.SerializeScript(script)
	after := translator.SerializeScript(clone)
	label := script.FilePath
	if label == "" {
		label = "script"
	}

	preview := &Preview{
		Changed: changed,
		Diff:    diff.GenerateUnifiedDiff(before, after, label, label+" (replaced)"),
		Stats:   diff.Summarize(before, after),
	}
	s.logger.Debug(ctx, "color replacement previewed", "blocks_changed", changed)
	return preview, nil
}

func contextCheck(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return filter.NewDomainError(filter.ErrCodeCancelled, "operation cancelled", err, nil)
	}
	return nil
}
