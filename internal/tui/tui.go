// Package tui is an interactive editor for pico's config file.
package tui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/pico/internal/config"
)

var isTerminalFn = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Run opens the editor for the config loaded in res and writes changes back
// to path once the user confirms the diff.
func Run(path string, res *config.LoadResult) error {
	if !isTerminalFn() {
		return fmt.Errorf("config edit requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	cfg := config.DefaultConfig()
	if res != nil && res.Config != nil {
		cfg = res.Config
	}

	final, err := tea.NewProgram(newModel(path, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok && m.err != nil && !errors.Is(m.err, errNoChanges) {
		return m.err
	}
	return nil
}
