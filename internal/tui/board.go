package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"dreamplan/internal/storage"
)

// RunBoard opens the interactive day board on the stored snapshot.
func RunBoard(ctx context.Context, gw *storage.Gateway, out io.Writer) error {
	m := newBoardModel(ctx, gw)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
