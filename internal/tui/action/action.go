// Package action defines the closed set of state-changing intents the
// dispatcher processes, plus the Command layer that keybinding
// configuration resolves to.
package action

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/glabrego/crates-cli/internal/tui/mode"
)

// Action is one atomic unit of work for the dispatcher. Actions are pure
// data: created by the keybinding resolver, a timer, or a background task,
// and consumed exactly once.
type Action interface {
	isAction()
}

type (
	Ignore     struct{}
	Tick       struct{}
	Render     struct{}
	KeyRefresh struct{}
	Quit       struct{}

	Resize struct{ Width, Height int }
	Error  struct{ Message string }

	SwitchMode       struct{ Mode mode.Mode }
	SwitchToLastMode struct{}
	ClosePopup       struct{}
	ShowErrorPopup   struct{ Message string }
	ShowInfoPopup    struct{ Message string }

	SubmitSearch  struct{}
	ReloadData    struct{}
	ReloadSummary struct{}

	IncrementPage struct{}
	DecrementPage struct{}
	ToggleSortBy  struct{ Reload, Forward bool }

	StoreTotalCount              struct{ Total uint64 }
	UpdateSearchResults          struct{}
	UpdateCurrentSelectionDetail struct{}
	ClearTaskHandle              struct{ ID uuid.UUID }

	ToggleShowDetail struct{}

	ScrollUp     struct{}
	ScrollDown   struct{}
	ScrollTop    struct{}
	ScrollBottom struct{}

	NextSummaryMode     struct{}
	PreviousSummaryMode struct{}

	CopyInstallCommand    struct{}
	OpenDocsInBrowser     struct{}
	OpenCratesIOInBrowser struct{}
)

func (Ignore) isAction()                       {}
func (Tick) isAction()                         {}
func (Render) isAction()                       {}
func (KeyRefresh) isAction()                   {}
func (Quit) isAction()                         {}
func (Resize) isAction()                       {}
func (Error) isAction()                        {}
func (SwitchMode) isAction()                   {}
func (SwitchToLastMode) isAction()             {}
func (ClosePopup) isAction()                   {}
func (ShowErrorPopup) isAction()               {}
func (ShowInfoPopup) isAction()                {}
func (SubmitSearch) isAction()                 {}
func (ReloadData) isAction()                   {}
func (ReloadSummary) isAction()                {}
func (IncrementPage) isAction()                {}
func (DecrementPage) isAction()                {}
func (ToggleSortBy) isAction()                 {}
func (StoreTotalCount) isAction()              {}
func (UpdateSearchResults) isAction()          {}
func (UpdateCurrentSelectionDetail) isAction() {}
func (ClearTaskHandle) isAction()              {}
func (ToggleShowDetail) isAction()             {}
func (ScrollUp) isAction()                     {}
func (ScrollDown) isAction()                   {}
func (ScrollTop) isAction()                    {}
func (ScrollBottom) isAction()                 {}
func (NextSummaryMode) isAction()              {}
func (PreviousSummaryMode) isAction()          {}
func (CopyInstallCommand) isAction()           {}
func (OpenDocsInBrowser) isAction()            {}
func (OpenCratesIOInBrowser) isAction()        {}

// Name returns a stable identifier for logging.
func Name(a Action) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", a), "action.")
}

// HighFrequency reports whether an action fires on a timer and should be
// excluded from dispatch logging.
func HighFrequency(a Action) bool {
	switch a.(type) {
	case Tick, Render, KeyRefresh:
		return true
	}
	return false
}
