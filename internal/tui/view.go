package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/crates-cli/internal/render/readme"
	"github.com/glabrego/crates-cli/internal/tui/mode"
	"github.com/glabrego/crates-cli/internal/tui/state"
	"github.com/glabrego/crates-cli/internal/tui/view"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	th := m.opts.Theme

	header := th.Title.Render("crates.io") + "  " + th.ModePill.Render(m.mode.String())
	toolbar := th.MetaLabel.Render(view.Toolbar(m.mode))

	contentHeight := max(3, m.height-5)
	var content string
	switch m.mode {
	case mode.Summary:
		content = view.RenderSummary(m.summaryValue(), m.summaryPanel, m.summaryCursor, m.width, th)
	case mode.Help:
		content = m.helpView(contentHeight)
	case mode.Popup:
		content = view.RenderPopup(m.popupMessage, m.popupIsError, m.width, contentHeight, th)
	default:
		content = m.resultsView(contentHeight)
	}
	content = lipgloss.NewStyle().Height(contentHeight).Render(content)

	footer := view.Footer(m.mode, m.sort.String(), m.page, m.maxPage(), len(m.filtered), m.filterInput.Value(), th)
	status := view.StatusLine(m.opts.Tasks.Loading(), m.loadSpinner.View(), m.status, th)

	return strings.Join([]string{header, toolbar, content, footer, status}, "\n")
}

func (m Model) maxPage() uint64 {
	if !m.totalKnown {
		return 0
	}
	return state.MaxPage(m.total, m.opts.PageSize)
}

func (m Model) resultsView(height int) string {
	listWidth := m.width
	if m.showDetail {
		listWidth = m.width / 2
	}

	var b strings.Builder
	if m.mode.Editing() {
		prompt := m.searchInput.View()
		if m.mode == mode.Filter {
			prompt = m.filterInput.View()
		}
		b.WriteString(m.opts.Theme.Prompt(m.mode, len(m.filtered) == 0).Width(max(10, listWidth-2)).Render(prompt))
		b.WriteString("\n")
		height = max(1, height-3)
	}

	rows := make([]string, 0, height)
	start, end := state.CenteredWindow(len(m.filtered), m.cursor, height)
	for i := start; i < end; i++ {
		rows = append(rows, view.RenderCrateLine(view.CrateLineParams{
			Crate:      m.filtered[i],
			VisiblePos: i,
			Active:     i == m.cursor,
			Width:      listWidth,
		}, m.opts.Theme))
	}
	if len(rows) == 0 {
		rows = append(rows, m.opts.Theme.MetaLabel.Render("  no crates"))
	}
	b.WriteString(strings.Join(rows, "\n"))

	if !m.showDetail {
		return b.String()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, b.String(), m.detailView(m.width-listWidth-1, height))
}

func (m Model) detailView(width, height int) string {
	d, ok := m.detail.Load()
	if !ok {
		return lipgloss.NewStyle().Width(width).Render(m.opts.Theme.MetaLabel.Render("  fetching detail..."))
	}
	lines := view.DetailMetaLines(d, max(10, width-2), wrapPlain)
	if body := readme.Lines(d.Readme, max(10, width-2)); len(body) > 0 {
		lines = append(lines, "", "Readme:", "")
		lines = append(lines, body...)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return lipgloss.NewStyle().Width(width).PaddingLeft(1).Render(strings.Join(lines, "\n"))
}

func (m Model) helpView(height int) string {
	rendered := view.RenderHelp(m.opts.Bindings, m.helpFrom, m.width, m.opts.Theme)
	lines := strings.Split(rendered, "\n")
	if m.helpScroll > 0 && m.helpScroll < len(lines) {
		lines = lines[m.helpScroll:]
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func wrapPlain(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	out := make([]string, 0, 2)
	line := ""
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			out = append(out, line)
			line = word
		}
	}
	return append(out, line)
}
