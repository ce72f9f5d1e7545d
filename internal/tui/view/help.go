package view

import (
	"strings"

	"github.com/glabrego/crates-cli/internal/tui/keybind"
	"github.com/glabrego/crates-cli/internal/tui/mode"
	tuitheme "github.com/glabrego/crates-cli/internal/tui/theme"
)

// RenderHelp draws the keybinding table for the mode help was opened from.
func RenderHelp(bindings *keybind.Bindings, from mode.Mode, width int, th tuitheme.Theme) string {
	entries := bindings.ForMode(from)

	keyWidth := 0
	for _, e := range entries {
		if n := len(e.Sequence); n > keyWidth {
			keyWidth = n
		}
	}

	var b strings.Builder
	b.WriteString(th.Title.Render("Help") + "  " + th.MetaLabel.Render("bindings for "+from.String()) + "\n\n")
	for _, e := range entries {
		key := e.Sequence + strings.Repeat(" ", keyWidth-len(e.Sequence))
		line := "  " + th.HelpKey.Render(key) + "   " + th.HelpDesc.Render(e.Command.Describe())
		b.WriteString(truncateRunes(line, max(1, width)) + "\n")
	}
	b.WriteString("\n" + th.MetaLabel.Render("esc to close"))
	return b.String()
}
