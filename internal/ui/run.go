package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"ytcatalog/internal/catalog"
)

// Run shows the progress view while export runs and returns its outcome.
// Quitting before the export finishes returns context.Canceled.
func Run(ctx context.Context, input string, export ExportFunc) (catalog.Exported, error) {
	m := NewModel(ctx, input, export)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return catalog.Exported{}, err
	}
	fm, ok := final.(Model)
	if !ok {
		return catalog.Exported{}, errors.New("ui: unexpected final model")
	}
	if !fm.done {
		return fm.out, context.Canceled
	}
	return fm.out, fm.err
}
