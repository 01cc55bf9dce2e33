package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scriptapp "github.com/958877748/Filtration/internal/app/script"
	"github.com/958877748/Filtration/internal/domain/filter"
	"github.com/958877748/Filtration/internal/infrastructure/clipboard"
	"github.com/958877748/Filtration/internal/infrastructure/persistence"
	"github.com/958877748/Filtration/internal/logger"
	"github.com/958877748/Filtration/internal/translator"
)

const sampleScript = `# Loot filter

Show # Currency - Orbs
    SetTextColor 255 0 0
    SetBackgroundColor 0 0 0 200
    BaseType "Chaos Orb"

# Section: Gear

Hide
    SetBorderColor 10 20 30
`

func newTestModel(t *testing.T) (Model, *scriptapp.Service) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "loot.filter")
	require.NoError(t, os.WriteFile(path, []byte(sampleScript), 0o644))

	noop := logger.NewNoOp()
	service := scriptapp.NewService(persistence.NewFileStore(noop), clipboard.NewMemory(), noop)
	script, err := service.Open(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, script.Blocks, 3)

	m := NewModel(context.Background(), service, script)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model), service
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func TestCursorWraps(t *testing.T) {
	m, _ := newTestModel(t)

	m.MoveCursorUp()
	assert.Equal(t, 2, m.Cursor())

	m.MoveCursorDown()
	assert.Equal(t, 0, m.Cursor())

	m, _ = press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.Cursor())
}

func TestCursorOnEmptyScript(t *testing.T) {
	noop := logger.NewNoOp()
	service := scriptapp.NewService(persistence.NewFileStore(noop), clipboard.NewMemory(), noop)
	m := NewModel(context.Background(), service, filter.NewScript())

	m.MoveCursorUp()
	m.MoveCursorDown()
	assert.Equal(t, 0, m.Cursor())
	assert.Nil(t, m.Selected())
}

func TestWindowSize(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 30, m.height)
}

func TestMoveKeysFollowBlock(t *testing.T) {
	m, _ := newTestModel(t)
	first := m.Selected()

	m, _ = press(t, m, runes("J"))
	assert.Equal(t, 1, m.Cursor())
	assert.Same(t, first, m.Script().Blocks[1])
	assert.True(t, m.Dirty())

	m, _ = press(t, m, runes("B"))
	assert.Equal(t, 2, m.Cursor())
	assert.Same(t, first, m.Script().Blocks[2])

	m, _ = press(t, m, runes("T"))
	assert.Equal(t, 0, m.Cursor())
	assert.Same(t, first, m.Script().Blocks[0])
}

func TestMoveUpAtTopKeepsCleanState(t *testing.T) {
	m, _ := newTestModel(t)
	before := append([]filter.Block(nil), m.Script().Blocks...)

	m, _ = press(t, m, runes("K"))
	assert.Equal(t, before, m.Script().Blocks)
	assert.False(t, m.Dirty())
}

func TestAddBlockAndSection(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, runes("a"))
	require.Len(t, m.Script().Blocks, 4)
	assert.Equal(t, 1, m.Cursor())
	assert.IsType(t, &filter.RuleBlock{}, m.Selected())

	m, _ = press(t, m, runes("s"))
	require.Len(t, m.Script().Blocks, 5)
	assert.Equal(t, 2, m.Cursor())
	assert.IsType(t, &filter.SectionBlock{}, m.Selected())
	assert.Equal(t, "Section added", m.status)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	m, _ := newTestModel(t)
	target := m.Selected()

	m, _ = press(t, m, runes("d"))
	assert.Equal(t, confirmDelete, m.confirm)
	assert.Len(t, m.Script().Blocks, 3)

	m, _ = press(t, m, runes("n"))
	assert.Equal(t, confirmNone, m.confirm)
	assert.Len(t, m.Script().Blocks, 3)

	m, _ = press(t, m, runes("d"), runes("y"))
	require.Len(t, m.Script().Blocks, 2)
	assert.Equal(t, -1, m.Script().IndexOf(target))
	assert.True(t, m.Dirty())
}

func TestDeleteLastBlockClampsCursor(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, runes("k"), runes("d"), runes("y"))
	require.Len(t, m.Script().Blocks, 2)
	assert.Equal(t, 1, m.Cursor())
}

func TestCopyPaste(t *testing.T) {
	m, _ := newTestModel(t)
	source := m.Selected()

	m, _ = press(t, m, runes("c"))
	assert.Equal(t, "Block copied", m.status)
	assert.False(t, m.Dirty())

	m, _ = press(t, m, runes("j"), runes("v"))
	require.Len(t, m.Script().Blocks, 4)
	assert.Equal(t, 2, m.Cursor())
	pasted := m.Selected()
	assert.NotSame(t, source, pasted)
	assert.True(t, filter.BlocksEqual(source, pasted))
	assert.Equal(t, translator.SerializeBlock(source), translator.SerializeBlock(pasted))
}

func TestPasteWithEmptyClipboard(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, runes("v"))
	assert.Len(t, m.Script().Blocks, 3)
	assert.Equal(t, "Clipboard does not hold a block", m.status)
	assert.False(t, m.Dirty())
}

func TestQuitWithUnsavedChangesConfirms(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m, cmd = press(t, m, runes("a"), runes("q"))
	assert.Nil(t, cmd)
	assert.Equal(t, confirmQuit, m.confirm)

	_, cmd = press(t, m, runes("y"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
}

func TestSaveWritesFile(t *testing.T) {
	m, service := newTestModel(t)

	m, _ = press(t, m, runes("J"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, m.saving)

	// mutations wait for the save to finish
	m, _ = press(t, m, runes("a"))
	assert.Len(t, m.Script().Blocks, 3)
	assert.Equal(t, "Save in progress", m.status)

	msg := saveCmd(context.Background(), service, m.Script())()
	saved, ok := msg.(savedMsg)
	require.True(t, ok)

	updated, _ := m.Update(saved)
	m = updated.(Model)
	assert.False(t, m.saving)
	assert.False(t, m.Dirty())

	data, err := os.ReadFile(m.Script().FilePath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Loot filter\n\n# Section: Gear"))
}

func TestSaveFailureIsShown(t *testing.T) {
	noop := logger.NewNoOp()
	service := scriptapp.NewService(persistence.NewFileStore(noop), clipboard.NewMemory(), noop)
	m := NewModel(context.Background(), service, service.New(""))

	msg := saveCmd(context.Background(), service, m.Script())()
	failed, ok := msg.(saveFailedMsg)
	require.True(t, ok)
	require.ErrorIs(t, failed.Err, scriptapp.ErrNoFilePath)

	updated, _ := m.Update(failed)
	m = updated.(Model)
	assert.Contains(t, m.errorMsg, "save-as")
}
