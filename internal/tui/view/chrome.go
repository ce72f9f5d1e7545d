package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/crates-cli/internal/tui/mode"
	tuitheme "github.com/glabrego/crates-cli/internal/tui/theme"
)

func Toolbar(m mode.Mode) string {
	switch m {
	case mode.Summary:
		return "tab/shift+tab panels | j/k move | enter open crate | / search | ? help | q quit"
	case mode.Picker:
		return "j/k move | enter detail | n/p page | s/S sort | f filter | / search | y copy | o docs | ? help"
	case mode.Search:
		return "type to search | enter submit | esc back"
	case mode.Filter:
		return "type to filter | enter apply | esc back"
	case mode.Help, mode.Popup:
		return "esc close"
	}
	return ""
}

func Footer(m mode.Mode, sortLabel string, page, maxPage uint64, shown int, filter string, th tuitheme.Theme) string {
	parts := []string{
		th.ModePill.Render(m.String()),
		th.MetaLabel.Render("sort") + " " + th.SortLabel.Render(sortLabel),
	}
	if maxPage > 0 {
		parts = append(parts, th.MetaLabel.Render("page")+" "+th.MetaValue.Render(fmt.Sprintf("%d/%d", page, maxPage)))
	} else {
		parts = append(parts, th.MetaLabel.Render("page")+" "+th.MetaValue.Render(fmt.Sprintf("%d", page)))
	}
	parts = append(parts, th.MetaValue.Render(fmt.Sprintf("%d shown", shown)))
	if filter != "" {
		parts = append(parts, th.MetaLabel.Render("filter")+" "+th.MetaValue.Render(fmt.Sprintf("%q", filter)))
	}
	return strings.Join(parts, " • ")
}

func StatusLine(loading bool, spinner, message string, th tuitheme.Theme) string {
	if loading {
		return th.StateLoad.Render(spinner+" loading") + "  " + th.MetaValue.Render(message)
	}
	if message == "" {
		message = "Ready"
	}
	return th.StateIdle.Render("●") + " " + th.MetaValue.Render(message)
}
