package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	scriptapp "github.com/958877748/Filtration/internal/app/script"
	"github.com/958877748/Filtration/internal/domain/filter"
)

// Run opens the browser in the alternate screen and blocks until it exits.
// It returns the final model so callers can report unsaved changes.
func Run(ctx context.Context, service *scriptapp.Service, script *filter.Script, opts ...tea.ProgramOption) (Model, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(NewModel(ctx, service, script), opts...)

	final, err := program.Run()
	if err != nil {
		return Model{}, fmt.Errorf("run browser: %w", err)
	}
	model, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("run browser: unexpected model %T", final)
	}
	return model, nil
}
