package view

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/glabrego/crates-cli/internal/registry"
	tuitheme "github.com/glabrego/crates-cli/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type CrateLineParams struct {
	Crate      registry.Crate
	VisiblePos int
	Active     bool
	Width      int
}

// RenderCrateLine lays out one result row: cursor marker, name, description
// and a right-aligned download count, zebra-striped by visible position.
func RenderCrateLine(p CrateLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	prefix := fmt.Sprintf(" %s ", cursorMarker)

	right := humanize.Comma(int64(p.Crate.Downloads))
	if !p.Crate.UpdatedAt.IsZero() && p.Width >= 50 {
		right = p.Crate.UpdatedAt.UTC().Format(time.DateOnly) + "  " + right
	}
	downloads := right
	name := strings.TrimSpace(p.Crate.Name)
	if name == "" {
		name = "(unnamed)"
	}
	desc := strings.TrimSpace(p.Crate.Description)

	available := p.Width - visibleLen(prefix) - 1 - visibleLen(downloads)
	if available < 1 {
		available = 1
	}
	label := name
	if desc != "" {
		label = name + "  " + desc
	}
	label = truncateRunes(label, available)

	styled := label
	if nameLen := min(utf8.RuneCountInString(name), utf8.RuneCountInString(label)); nameLen > 0 {
		runes := []rune(label)
		styled = th.CrateName.Render(string(runes[:nameLen])) + string(runes[nameLen:])
	}

	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(downloads)
	if gap < 1 {
		gap = 1
	}
	line := prefix + styled + strings.Repeat(" ", gap) + th.Downloads.Render(downloads)
	return th.RenderRow(p.Active, p.VisiblePos%2 == 1, line)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}

