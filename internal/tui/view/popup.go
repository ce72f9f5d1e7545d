package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	tuitheme "github.com/glabrego/crates-cli/internal/tui/theme"
)

// RenderPopup draws a bordered message box centered in the given area,
// red-bordered for errors.
func RenderPopup(message string, isError bool, width, height int, th tuitheme.Theme) string {
	boxWidth := min(max(20, width*2/3), width-4)
	if boxWidth < 10 {
		boxWidth = 10
	}

	title := "Info"
	style := th.PopupInfo
	if isError {
		title = "Error"
		style = th.PopupError
	}

	inner := boxWidth - 6
	if inner < 8 {
		inner = 8
	}
	body := strings.Join(wrapPopupText(message, inner), "\n")
	box := style.Width(boxWidth).Render(th.Title.Render(title) + "\n\n" + body + "\n\n" + th.MetaLabel.Render("esc to dismiss"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func wrapPopupText(text string, width int) []string {
	out := make([]string, 0, 4)
	for _, p := range strings.Split(text, "\n") {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
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
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
