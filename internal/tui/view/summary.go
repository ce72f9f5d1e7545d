package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/glabrego/crates-cli/internal/registry"
	tuitheme "github.com/glabrego/crates-cli/internal/tui/theme"
)

// SummaryPanel identifies one of the front-page lists.
type SummaryPanel int

const (
	PanelNewCrates SummaryPanel = iota
	PanelMostDownloaded
	PanelJustUpdated
)

func (p SummaryPanel) String() string {
	switch p {
	case PanelNewCrates:
		return "New Crates"
	case PanelMostDownloaded:
		return "Most Downloaded"
	case PanelJustUpdated:
		return "Just Updated"
	}
	return "unknown"
}

func (p SummaryPanel) Next() SummaryPanel {
	return SummaryPanel((int(p) + 1) % 3)
}

func (p SummaryPanel) Previous() SummaryPanel {
	return SummaryPanel((int(p) + 2) % 3)
}

// Crates returns the panel's slice from a summary.
func (p SummaryPanel) Crates(s registry.Summary) []registry.Crate {
	switch p {
	case PanelMostDownloaded:
		return s.MostDownloaded
	case PanelJustUpdated:
		return s.JustUpdated
	default:
		return s.NewCrates
	}
}

// RenderSummary lays out the front page: registry totals on top, the three
// panels side by side with the active one highlighted and its cursor row
// marked.
func RenderSummary(s registry.Summary, active SummaryPanel, cursor, width int, th tuitheme.Theme) string {
	var b strings.Builder
	b.WriteString(th.MetaLabel.Render("crates") + " " + th.MetaValue.Render(humanize.Comma(s.NumCrates)))
	b.WriteString("   ")
	b.WriteString(th.MetaLabel.Render("downloads") + " " + th.MetaValue.Render(humanize.Comma(s.NumDownloads)))
	b.WriteString("\n\n")

	colWidth := width/3 - 2
	if colWidth < 16 {
		colWidth = 16
	}
	cols := make([]string, 0, 3)
	for _, panel := range []SummaryPanel{PanelNewCrates, PanelMostDownloaded, PanelJustUpdated} {
		cols = append(cols, renderSummaryColumn(panel, panel.Crates(s), panel == active, cursor, colWidth, th))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	return b.String()
}

func renderSummaryColumn(panel SummaryPanel, crates []registry.Crate, active bool, cursor, width int, th tuitheme.Theme) string {
	title := panel.String()
	header := th.MetaLabel.Render(title)
	if active {
		header = th.Section.Render(title)
	}
	lines := []string{header, ""}
	for i, c := range crates {
		label := truncateRunes(c.Name, width-4)
		if panel == PanelMostDownloaded {
			label = truncateRunes(c.Name+" ("+humanize.Comma(int64(c.Downloads))+")", width-4)
		}
		marker := "  "
		if active && i == cursor {
			marker = "> "
			label = th.ActiveRow.Render(label)
		}
		lines = append(lines, marker+label)
	}
	col := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Width(width).MarginRight(2).Render(col)
}
