package action

import (
	"fmt"
	"strings"

	"github.com/glabrego/crates-cli/internal/tui/mode"
)

// CommandKind enumerates the symbolic names usable in keybinding
// configuration.
type CommandKind string

const (
	CmdIgnore              CommandKind = "ignore"
	CmdQuit                CommandKind = "quit"
	CmdClosePopup          CommandKind = "close_popup"
	CmdSwitchMode          CommandKind = "switch_mode"
	CmdSwitchToLastMode    CommandKind = "switch_to_last_mode"
	CmdIncrementPage       CommandKind = "increment_page"
	CmdDecrementPage       CommandKind = "decrement_page"
	CmdNextSummaryMode     CommandKind = "next_summary_mode"
	CmdPreviousSummaryMode CommandKind = "previous_summary_mode"
	CmdToggleSortBy        CommandKind = "toggle_sort_by"
	CmdScrollUp            CommandKind = "scroll_up"
	CmdScrollDown          CommandKind = "scroll_down"
	CmdScrollTop           CommandKind = "scroll_top"
	CmdScrollBottom        CommandKind = "scroll_bottom"
	CmdSubmitSearch        CommandKind = "submit_search"
	CmdReloadData          CommandKind = "reload_data"
	CmdReloadSummary       CommandKind = "reload_summary"
	CmdToggleShowDetail    CommandKind = "toggle_show_detail"
	CmdCopyInstallCommand  CommandKind = "copy_install_command"
	CmdOpenDocs            CommandKind = "open_docs_in_browser"
	CmdOpenCratesIO        CommandKind = "open_cratesio_in_browser"
)

// Command is the configuration-level symbolic layer between key chords and
// Actions. A parsed Command always maps to exactly one Action.
type Command struct {
	Kind    CommandKind
	Mode    mode.Mode // for switch_mode
	Reload  bool      // for toggle_sort_by
	Forward bool      // for toggle_sort_by
}

// ParseCommand parses a command spec from keybinding configuration.
// Parameterized commands use colon-separated arguments:
//
//	switch_mode:search
//	toggle_sort_by:reload:forward
func ParseCommand(spec string) (Command, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	kind := CommandKind(parts[0])
	args := parts[1:]

	switch kind {
	case CmdSwitchMode:
		if len(args) != 1 {
			return Command{}, fmt.Errorf("switch_mode needs a mode argument: %q", spec)
		}
		m, err := mode.Parse(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("parse command %q: %w", spec, err)
		}
		return Command{Kind: CmdSwitchMode, Mode: m}, nil

	case CmdToggleSortBy:
		cmd := Command{Kind: CmdToggleSortBy, Forward: true}
		for _, arg := range args {
			switch arg {
			case "reload":
				cmd.Reload = true
			case "no_reload":
				cmd.Reload = false
			case "forward":
				cmd.Forward = true
			case "backward":
				cmd.Forward = false
			default:
				return Command{}, fmt.Errorf("unknown toggle_sort_by argument %q in %q", arg, spec)
			}
		}
		return cmd, nil

	case CmdIgnore, CmdQuit, CmdClosePopup, CmdSwitchToLastMode,
		CmdIncrementPage, CmdDecrementPage,
		CmdNextSummaryMode, CmdPreviousSummaryMode,
		CmdScrollUp, CmdScrollDown, CmdScrollTop, CmdScrollBottom,
		CmdSubmitSearch, CmdReloadData, CmdReloadSummary,
		CmdToggleShowDetail, CmdCopyInstallCommand,
		CmdOpenDocs, CmdOpenCratesIO:
		if len(args) != 0 {
			return Command{}, fmt.Errorf("command %q takes no arguments", spec)
		}
		return Command{Kind: kind}, nil
	}
	return Command{}, fmt.Errorf("unknown command %q", spec)
}

// Action converts a Command to its Action. The mapping is total: every
// Command built by ParseCommand yields exactly one Action.
func (c Command) Action() Action {
	switch c.Kind {
	case CmdQuit:
		return Quit{}
	case CmdClosePopup:
		return ClosePopup{}
	case CmdSwitchMode:
		return SwitchMode{Mode: c.Mode}
	case CmdSwitchToLastMode:
		return SwitchToLastMode{}
	case CmdIncrementPage:
		return IncrementPage{}
	case CmdDecrementPage:
		return DecrementPage{}
	case CmdNextSummaryMode:
		return NextSummaryMode{}
	case CmdPreviousSummaryMode:
		return PreviousSummaryMode{}
	case CmdToggleSortBy:
		return ToggleSortBy{Reload: c.Reload, Forward: c.Forward}
	case CmdScrollUp:
		return ScrollUp{}
	case CmdScrollDown:
		return ScrollDown{}
	case CmdScrollTop:
		return ScrollTop{}
	case CmdScrollBottom:
		return ScrollBottom{}
	case CmdSubmitSearch:
		return SubmitSearch{}
	case CmdReloadData:
		return ReloadData{}
	case CmdReloadSummary:
		return ReloadSummary{}
	case CmdToggleShowDetail:
		return ToggleShowDetail{}
	case CmdCopyInstallCommand:
		return CopyInstallCommand{}
	case CmdOpenDocs:
		return OpenDocsInBrowser{}
	case CmdOpenCratesIO:
		return OpenCratesIOInBrowser{}
	}
	return Ignore{}
}

// Describe returns a short human-readable label for the help view.
func (c Command) Describe() string {
	switch c.Kind {
	case CmdQuit:
		return "quit"
	case CmdClosePopup:
		return "close popup"
	case CmdSwitchMode:
		return "switch to " + c.Mode.String()
	case CmdSwitchToLastMode:
		return "back"
	case CmdIncrementPage:
		return "next page"
	case CmdDecrementPage:
		return "previous page"
	case CmdNextSummaryMode:
		return "next summary panel"
	case CmdPreviousSummaryMode:
		return "previous summary panel"
	case CmdToggleSortBy:
		dir := "next"
		if !c.Forward {
			dir = "previous"
		}
		if c.Reload {
			return dir + " sort order (reload)"
		}
		return dir + " sort order"
	case CmdScrollUp:
		return "scroll up"
	case CmdScrollDown:
		return "scroll down"
	case CmdScrollTop:
		return "scroll to top"
	case CmdScrollBottom:
		return "scroll to bottom"
	case CmdSubmitSearch:
		return "submit search"
	case CmdReloadData:
		return "reload results"
	case CmdReloadSummary:
		return "reload summary"
	case CmdToggleShowDetail:
		return "toggle detail panel"
	case CmdCopyInstallCommand:
		return "copy cargo add command"
	case CmdOpenDocs:
		return "open docs.rs"
	case CmdOpenCratesIO:
		return "open crates.io"
	}
	return string(c.Kind)
}
