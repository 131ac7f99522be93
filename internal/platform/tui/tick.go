// Package tui runs the game in a Bubble Tea program: it ticks the game
// loop, maps keys to actions and draws the board with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sourceErrMsg carries a fatal input source error into the program.
type sourceErrMsg struct{ err error }

// waitSourceErr blocks on errs and delivers the first error as a message.
func waitSourceErr(errs <-chan error) tea.Cmd {
	if errs == nil {
		return nil
	}
	return func() tea.Msg {
		err, ok := <-errs
		if !ok {
			return nil
		}
		return sourceErrMsg{err: err}
	}
}
