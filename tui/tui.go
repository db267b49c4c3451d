// Package tui runs the interactive jsonview viewer.
package tui

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/session"
	"github.com/grovetools/jsonview/pkg/watch"
	"github.com/grovetools/jsonview/tui/components/jsontree"
)

// InitializeTUI prepares the terminal color profile. CLICOLOR_FORCE=1 or
// COLORTERM=truecolor force full color, NO_COLOR disables it.
func InitializeTUI() {
	switch {
	case os.Getenv("NO_COLOR") != "":
		lipgloss.SetColorProfile(termenv.Ascii)
	case os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// Run shows the viewer until the user quits or ctx ends. Every event from
// updates replaces the document, at most once per debounce; updates may be
// nil. Log output that would go to stderr is discarded while the screen is
// owned by the viewer.
func Run(ctx context.Context, m jsontree.Model, updates <-chan watch.Event, debounce time.Duration) error {
	InitializeTUI()

	logging.SetGlobalOutput(io.Discard)
	defer logging.SetGlobalOutput(os.Stderr)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	// a document piped on stdin leaves the keyboard on the tty
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		opts = append(opts, tea.WithInputTTY())
	}
	p := tea.NewProgram(m, opts...)
	if updates != nil {
		go forward(ctx, p, updates, debounce)
	}
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

func forward(ctx context.Context, p *tea.Program, updates <-chan watch.Event, debounce time.Duration) {
	texts := session.NewDebouncer(debounce, func(text string) {
		p.Send(jsontree.TextMsg{Text: text})
	})
	defer texts.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-updates:
			if !ok {
				texts.Flush()
				return
			}
			if ev.Err != nil {
				p.Send(jsontree.ErrMsg{Err: ev.Err})
				continue
			}
			texts.Trigger(string(ev.Data))
		}
	}
}
