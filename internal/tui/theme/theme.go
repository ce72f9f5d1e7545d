package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/crates-cli/internal/tui/mode"
)

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Section    lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style
	ActiveRow  lipgloss.Style
	ZebraRow   lipgloss.Style
	PlainRow   lipgloss.Style
	CrateName  lipgloss.Style
	Downloads  lipgloss.Style
	SortLabel  lipgloss.Style
	HelpKey    lipgloss.Style
	HelpDesc   lipgloss.Style
	PopupInfo  lipgloss.Style
	PopupError lipgloss.Style

	PromptSearch lipgloss.Style
	PromptFilter lipgloss.Style
}

// Default is a tailwind-flavored dark palette.
func Default() Theme {
	twGray900 := lipgloss.Color("#111827")
	twGray800 := lipgloss.Color("#1f2937")
	twGray400 := lipgloss.Color("#9ca3af")
	twGray200 := lipgloss.Color("#e5e7eb")
	twGreen400 := lipgloss.Color("#4ade80")
	twYellow400 := lipgloss.Color("#facc15")
	twRed400 := lipgloss.Color("#f87171")
	twBlue400 := lipgloss.Color("#60a5fa")
	twPurple400 := lipgloss.Color("#c084fc")
	twAmber300 := lipgloss.Color("#fcd34d")

	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(twPurple400),
		ModePill:  lipgloss.NewStyle().Foreground(twBlue400).Background(twGray800).Padding(0, 1),
		Section:   lipgloss.NewStyle().Bold(true).Foreground(twBlue400),
		MetaLabel: lipgloss.NewStyle().Foreground(twGray400),
		MetaValue: lipgloss.NewStyle().Foreground(twGray200),
		StateIdle: lipgloss.NewStyle().Foreground(twGreen400),
		StateWarn: lipgloss.NewStyle().Foreground(twRed400),
		StateLoad: lipgloss.NewStyle().Foreground(twAmber300),
		ActiveRow: lipgloss.NewStyle().Background(twGray800).Foreground(twGray200),
		ZebraRow:  lipgloss.NewStyle().Background(twGray900),
		PlainRow:  lipgloss.NewStyle(),
		CrateName: lipgloss.NewStyle().Bold(true).Foreground(twGray200),
		Downloads: lipgloss.NewStyle().Foreground(twYellow400),
		SortLabel: lipgloss.NewStyle().Foreground(twGray400).Italic(true),
		HelpKey:   lipgloss.NewStyle().Bold(true).Foreground(twGreen400),
		HelpDesc:  lipgloss.NewStyle().Foreground(twGray400),
		PopupInfo: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(twBlue400).
			Padding(1, 2),
		PopupError: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(twRed400).
			Padding(1, 2),
		PromptSearch: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(twGreen400).
			Padding(0, 1),
		PromptFilter: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(twYellow400).
			Padding(0, 1),
	}
}

// Prompt returns the input box style for an editing mode: green outline
// while searching, yellow while filtering, red once the filter matches
// nothing.
func (t Theme) Prompt(m mode.Mode, empty bool) lipgloss.Style {
	if m == mode.Filter {
		if empty {
			return t.PromptFilter.BorderForeground(lipgloss.Color("#f87171"))
		}
		return t.PromptFilter
	}
	return t.PromptSearch
}

func (t Theme) RenderRow(active, zebra bool, line string) string {
	switch {
	case active:
		return t.ActiveRow.Render(line)
	case zebra:
		return t.ZebraRow.Render(line)
	default:
		return t.PlainRow.Render(line)
	}
}
