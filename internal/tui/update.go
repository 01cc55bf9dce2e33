package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	scriptapp "github.com/958877748/Filtration/internal/app/script"
	"github.com/958877748/Filtration/internal/domain/filter"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case savedMsg:
		m.saving = false
		m.dirty = false
		m.setStatus(fmt.Sprintf("Saved %s", msg.Path))
		return m, nil

	case saveFailedMsg:
		m.saving = false
		if errors.Is(msg.Err, scriptapp.ErrNoFilePath) {
			m.setError(fmt.Errorf("%w (run filtration save-as first)", msg.Err))
			return m, nil
		}
		m.setError(msg.Err)
		return m, nil
	}

	return m, nil
}

// handleKeyPress routes a key to the confirm prompt or the list bindings.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != confirmNone {
		return m.handleConfirmKeys(msg)
	}
	return m.handleListKeys(msg)
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		kind := m.confirm
		m.confirm = confirmNone
		switch kind {
		case confirmDelete:
			return m.removeSelected()
		case confirmQuit:
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.confirm = confirmNone
		m.setStatus("Cancelled")
		return m, nil

	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty && msg.Type != tea.KeyCtrlC {
			m.confirm = confirmQuit
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.MoveCursorUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.MoveCursorDown()
		return m, nil
	}

	if m.saving {
		if isMutation(msg, m.keys) {
			m.setStatus("Save in progress")
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.MoveUp):
		return m.move(scriptapp.MoveUp)
	case key.Matches(msg, m.keys.MoveDown):
		return m.move(scriptapp.MoveDown)
	case key.Matches(msg, m.keys.MoveTop):
		return m.move(scriptapp.MoveTop)
	case key.Matches(msg, m.keys.MoveBottom):
		return m.move(scriptapp.MoveBottom)

	case key.Matches(msg, m.keys.AddBlock):
		block, err := m.service.AddBlock(m.ctx, m.script, m.Selected())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.selectBlock(block)
		m.dirty = true
		m.setStatus("Block added")
		return m, nil

	case key.Matches(msg, m.keys.AddSection):
		section, err := m.service.AddSection(m.ctx, m.script, m.Selected())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.selectBlock(section)
		m.dirty = true
		m.setStatus("Section added")
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.Selected() == nil {
			return m, nil
		}
		m.confirm = confirmDelete
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		block := m.Selected()
		if block == nil {
			return m, nil
		}
		if err := m.service.Copy(m.ctx, block); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Block copied")
		return m, nil

	case key.Matches(msg, m.keys.Paste):
		block, err := m.service.Paste(m.ctx, m.script, m.Selected())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if block == nil {
			m.setStatus("Clipboard does not hold a block")
			return m, nil
		}
		m.selectBlock(block)
		m.dirty = true
		m.setStatus("Block pasted")
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.saving = true
		m.setStatus("Saving...")
		return m, tea.Batch(m.spinner.Tick, saveCmd(m.ctx, m.service, m.script))
	}

	return m, nil
}

func (m Model) move(direction scriptapp.Direction) (tea.Model, tea.Cmd) {
	block := m.Selected()
	if block == nil {
		return m, nil
	}
	moved, err := m.service.Move(m.ctx, m.script, block, direction)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if moved {
		m.selectBlock(block)
		m.dirty = true
	}
	return m, nil
}

func (m Model) removeSelected() (tea.Model, tea.Cmd) {
	block := m.Selected()
	if block == nil {
		return m, nil
	}
	if err := m.service.Remove(m.ctx, m.script, block); err != nil {
		m.setError(err)
		return m, nil
	}
	m.clampCursor()
	m.dirty = true
	m.setStatus("Block removed")
	return m, nil
}

func isMutation(msg tea.KeyMsg, keys keyMap) bool {
	return key.Matches(msg,
		keys.MoveUp, keys.MoveDown, keys.MoveTop, keys.MoveBottom,
		keys.AddBlock, keys.AddSection, keys.Delete, keys.Paste, keys.Save,
	)
}

// saveCmd saves the script off the update loop. Mutating keys are refused
// until the result arrives, so the script has one writer.
func saveCmd(ctx context.Context, service *scriptapp.Service, script *filter.Script) tea.Cmd {
	return func() tea.Msg {
		if err := service.Save(ctx, script); err != nil {
			return saveFailedMsg{Err: err}
		}
		return savedMsg{Path: script.FilePath}
	}
}
