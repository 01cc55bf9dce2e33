package script

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/958877748/Filtration/internal/domain/filter"
	"github.com/958877748/Filtration/internal/infrastructure/clipboard"
	"github.com/958877748/Filtration/internal/translator"
	filtrationerrors "github.com/958877748/Filtration/pkg/errors"
)

type fakeStore struct {
	scripts map[string]*filter.Script
	saved   []string
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{scripts: make(map[string]*filter.Script)}
}

func (f *fakeStore) Load(_ context.Context, path string) (*filter.Script, error) {
	script, ok := f.scripts[path]
	if !ok {
		return nil, filtrationerrors.NewPersistenceError("read", path, errors.New("missing"))
	}
	return script, nil
}

func (f *fakeStore) Save(_ context.Context, script *filter.Script) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, script.FilePath)
	f.scripts[script.FilePath] = script
	return nil
}

func newTestService() (*Service, *fakeStore, *clipboard.Memory) {
	store := newFakeStore()
	clip := clipboard.NewMemory()
	return NewService(store, clip, nil), store, clip
}

func TestNewScriptHasOneBlock(t *testing.T) {
	svc, _, _ := newTestService()

	script := svc.New("my filter")
	require.Len(t, script.Blocks, 1)
	require.Equal(t, "my filter", script.Description)
	require.NoError(t, svc.Validate(script))
}

func TestSaveRejectsEmptyScript(t *testing.T) {
	svc, store, _ := newTestService()
	script := filter.NewScript()
	script.FilePath = "/tmp/empty.filter"

	err := svc.Save(context.Background(), script)

	var validationErr *filtrationerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, []string{filter.MsgNoBlocks}, validationErr.Messages)
	require.Empty(t, store.saved)
}

func TestSaveRequiresFilePath(t *testing.T) {
	svc, store, _ := newTestService()

	err := svc.Save(context.Background(), svc.New(""))
	require.ErrorIs(t, err, ErrNoFilePath)
	require.Empty(t, store.saved)
}

func TestSaveAsRestoresPathOnFailure(t *testing.T) {
	svc, store, _ := newTestService()
	script := svc.New("")
	script.FilePath = "/filters/original.filter"
	store.saveErr = filtrationerrors.NewPersistenceError("write", "/readonly/new.filter", errors.New("permission denied"))

	err := svc.SaveAs(context.Background(), script, "/readonly/new.filter")

	var persistenceErr *filtrationerrors.PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.Equal(t, "/filters/original.filter", script.FilePath)
}

func TestSaveAsUpdatesPath(t *testing.T) {
	svc, store, _ := newTestService()
	script := svc.New("")

	require.NoError(t, svc.SaveAs(context.Background(), script, "/filters/new.filter"))
	assert.Equal(t, "/filters/new.filter", script.FilePath)
	assert.Equal(t, []string{"/filters/new.filter"}, store.saved)

	require.NoError(t, svc.Save(context.Background(), script))
	assert.Len(t, store.saved, 2)
}

func TestSaveAsValidatesFirst(t *testing.T) {
	svc, store, _ := newTestService()
	script := filter.NewScript()
	script.FilePath = "/filters/original.filter"

	err := svc.SaveAs(context.Background(), script, "/filters/new.filter")
	var validationErr *filtrationerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "/filters/original.filter", script.FilePath)
	assert.Empty(t, store.saved)
}

func TestCopyPasteBetweenScripts(t *testing.T) {
	svc, _, clip := newTestService()
	ctx := context.Background()

	source := filter.NewScript()
	block := filter.NewRuleBlock()
	block.Description = "Chaos"
	block.Group = source.EnsureGroup("Currency")
	block.Items = []filter.Item{filter.NewColorItem(filter.TextColor, filter.RGB(1, 2, 3))}
	require.NoError(t, source.InsertAfter(nil, block))

	require.NoError(t, svc.Copy(ctx, block))
	text, err := clip.ReadText(ctx)
	require.NoError(t, err)
	require.Equal(t, translator.SerializeBlock(block), text)

	destination := svc.New("")
	existing := destination.EnsureGroup("Currency")
	first := destination.Blocks[0]

	pasted, err := svc.Paste(ctx, destination, first)
	require.NoError(t, err)
	require.NotNil(t, pasted)
	require.Len(t, destination.Blocks, 2)
	require.Same(t, pasted, destination.Blocks[1])
	require.True(t, filter.BlocksEqual(block, pasted))
	require.Same(t, existing, pasted.(*filter.RuleBlock).Group)

	again, err := svc.Paste(ctx, destination, nil)
	require.NoError(t, err)
	require.NotSame(t, pasted, again)
	require.Same(t, again, destination.Blocks[2])
}

func TestPasteRegistersThemeComponents(t *testing.T) {
	svc, _, clip := newTestService()
	ctx := context.Background()

	require.NoError(t, clip.WriteText(ctx, "Show\n    SetTextColor 10 20 30 # Currency Text"))

	destination := svc.New("")
	destination.ThemeComponents.Register(filter.BorderColor, "Frame", filter.RGB(1, 1, 1))

	pasted, err := svc.Paste(ctx, destination, nil)
	require.NoError(t, err)
	require.NotNil(t, pasted)

	component, ok := destination.ThemeComponents.Lookup(filter.TextColor, "Currency Text")
	require.True(t, ok)
	require.Equal(t, filter.RGB(10, 20, 30), component.Color)
	require.Equal(t, 2, destination.ThemeComponents.Len())
}

func TestPasteIgnoresEmptyOrGarbageClipboard(t *testing.T) {
	for _, text := range []string{"", "not a filter block", "Show\nShow"} {
		t.Run(text, func(t *testing.T) {
			svc, _, clip := newTestService()
			ctx := context.Background()
			require.NoError(t, clip.WriteText(ctx, text))

			script := svc.New("")
			before := append([]filter.Block(nil), script.Blocks...)

			block, err := svc.Paste(ctx, script, script.Blocks[0])
			require.NoError(t, err)
			require.Nil(t, block)
			require.Equal(t, before, script.Blocks)
		})
	}
}

type failingClipboard struct{}

func (failingClipboard) ReadText(context.Context) (string, error) {
	return "", errors.New("clipboard locked")
}

func (failingClipboard) WriteText(context.Context, string) error {
	return errors.New("clipboard locked")
}

func TestPasteSurfacesClipboardFailure(t *testing.T) {
	svc := NewService(newFakeStore(), failingClipboard{}, nil)
	script := svc.New("")

	_, err := svc.Paste(context.Background(), script, nil)
	require.Error(t, err)
	require.Len(t, script.Blocks, 1)

	require.Error(t, svc.Copy(context.Background(), script.Blocks[0]))
}

func TestMoveAndRemove(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	script := svc.New("")
	first := script.Blocks[0]
	section, err := svc.AddSection(ctx, script, first)
	require.NoError(t, err)
	last, err := svc.AddBlock(ctx, script, nil)
	require.NoError(t, err)

	moved, err := svc.Move(ctx, script, last, MoveTop)
	require.NoError(t, err)
	require.True(t, moved)
	require.Equal(t, []filter.Block{last, first, section}, script.Blocks)

	moved, err = svc.Move(ctx, script, last, MoveUp)
	require.NoError(t, err)
	require.False(t, moved)

	_, err = svc.Move(ctx, script, last, Direction("sideways"))
	require.Error(t, err)

	require.NoError(t, svc.Remove(ctx, script, first))
	require.Equal(t, []filter.Block{last, section}, script.Blocks)
	require.True(t, filter.HasCode(svc.Remove(ctx, script, first), filter.ErrCodeNotFound))
}

func TestReplaceColorsAndPreview(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	script, err := translator.ParseScript(strings.Join([]string{
		"Show",
		"    SetTextColor 255 0 0",
		"    SetBorderColor 0 0 255",
		"",
		"Show",
		"    SetTextColor 255 0 0",
		"",
	}, "\n"))
	require.NoError(t, err)

	request := filter.ColorReplaceRequest{
		Text:   filter.ColorReplacement{Enabled: true, Old: filter.RGB(255, 0, 0), New: filter.RGB(0, 255, 0)},
		Border: filter.ColorReplacement{Enabled: true, Old: filter.RGB(0, 0, 255), New: filter.RGB(0, 0, 0)},
	}

	preview, err := svc.PreviewReplaceColors(ctx, script, request)
	require.NoError(t, err)
	assert.Equal(t, 1, preview.Changed)
	assert.Equal(t, 2, preview.Stats.Added)
	assert.Equal(t, 2, preview.Stats.Removed)
	assert.Contains(t, preview.Diff, "+    SetTextColor 0 255 0")
	assert.Equal(t, filter.RGB(255, 0, 0), script.Rules()[0].ColorItem(filter.TextColor).Color, "preview must not mutate")

	changed, err := svc.ReplaceColors(ctx, script, request)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, filter.RGB(0, 255, 0), script.Rules()[0].ColorItem(filter.TextColor).Color)
	assert.Equal(t, filter.RGB(255, 0, 0), script.Rules()[1].ColorItem(filter.TextColor).Color)
}

func TestCancelledContext(t *testing.T) {
	svc, store, _ := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	script := svc.New("")
	script.FilePath = "/filters/a.filter"
	err := svc.Save(ctx, script)
	require.True(t, filter.HasCode(err, filter.ErrCodeCancelled))
	require.Empty(t, store.saved)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("bottom")
	require.NoError(t, err)
	require.Equal(t, MoveBottom, d)

	_, err = ParseDirection("left")
	require.Error(t, err)
}
