// Package tui implements the interactive script browser: a block list with
// color previews, reordering, clipboard copy and paste, and saving through
// the script service.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	scriptapp "github.com/958877748/Filtration/internal/app/script"
	"github.com/958877748/Filtration/internal/domain/filter"
)

// confirmKind identifies what a pending y/n prompt will do.
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmQuit
)

// savedMsg reports a completed save.
type savedMsg struct {
	Path string
}

// saveFailedMsg reports a save that returned an error.
type saveFailedMsg struct {
	Err error
}

// Model is the Bubbletea state of the script browser.
type Model struct {
	ctx     context.Context
	service *scriptapp.Service
	script  *filter.Script

	cursor  int
	confirm confirmKind
	dirty   bool
	saving  bool

	status   string
	errorMsg string

	width  int
	height int

	keys    keyMap
	help    help.Model
	spinner spinner.Model
}

// NewModel constructs a browser over script.
func NewModel(ctx context.Context, service *scriptapp.Service, script *filter.Script) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		ctx:     ctx,
		service: service,
		script:  script,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: s,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Script returns the document being edited.
func (m Model) Script() *filter.Script {
	return m.script
}

// Cursor returns the selected block index.
func (m Model) Cursor() int {
	return m.cursor
}

// Dirty reports whether the script changed since it was opened or last saved.
func (m Model) Dirty() bool {
	return m.dirty
}

// Selected returns the block under the cursor, or nil for an empty script.
func (m Model) Selected() filter.Block {
	block, err := m.script.BlockAt(m.cursor)
	if err != nil {
		return nil
	}
	return block
}

// MoveCursorUp moves the cursor up, wrapping to the last block.
func (m *Model) MoveCursorUp() {
	if len(m.script.Blocks) == 0 {
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = len(m.script.Blocks) - 1
	}
}

// MoveCursorDown moves the cursor down, wrapping to the first block.
func (m *Model) MoveCursorDown() {
	if len(m.script.Blocks) == 0 {
		return
	}
	m.cursor++
	if m.cursor >= len(m.script.Blocks) {
		m.cursor = 0
	}
}

// selectBlock points the cursor at block when it is in the script.
func (m *Model) selectBlock(block filter.Block) {
	if index := m.script.IndexOf(block); index >= 0 {
		m.cursor = index
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.script.Blocks) {
		m.cursor = len(m.script.Blocks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(status string) {
	m.status = status
	m.errorMsg = ""
}

func (m *Model) setError(err error) {
	m.status = ""
	m.errorMsg = err.Error()
}
