package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lobsternotes/lnrouter"
)

// Run starts a router at startPath and runs the terminal front end until
// the user quits or ctx is done.
func Run(ctx context.Context, startPath string, b Backend, opts Options) error {

	r := lnrouter.New(lnrouter.NewMemoryHistory(startPath), lnrouter.WithLogger(opts.Logger))
	r.Start()
	defer r.Stop()

	m := New(r, b, opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}
