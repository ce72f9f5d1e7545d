package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/crates-cli/internal/tui/action"
)

// tickMsg drives the app tick (spinner, periodic state). keyRefreshMsg
// expires partially entered key chords. Each handler re-arms its own
// timer.
type (
	tickMsg       time.Time
	keyRefreshMsg time.Time
)

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func keyRefreshEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return keyRefreshMsg(t) })
}

// emit defers an action to a later update cycle. Follow-up actions always
// go through here so the current action finishes processing first.
func emit(a action.Action) tea.Cmd {
	return func() tea.Msg { return a }
}
