package view

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/glabrego/crates-cli/internal/registry"
)

type WrapFunc func(string, int) []string

// DetailMetaLines builds the metadata header of the detail panel: name,
// versions, download counts, links, keywords and categories.
func DetailMetaLines(d registry.Detail, width int, wrap WrapFunc) []string {
	lines := make([]string, 0, 24)
	lines = append(lines, wrap(d.Crate.Name, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, len(d.Crate.Name)))))
	lines = append(lines, "")

	if desc := strings.TrimSpace(d.Crate.Description); desc != "" {
		lines = append(lines, wrap(desc, width)...)
		lines = append(lines, "")
	}

	if d.Crate.MaxVersion != "" {
		lines = append(lines, "Latest: "+d.Crate.MaxVersion)
	}
	if d.Crate.MaxStableVersion != "" && d.Crate.MaxStableVersion != d.Crate.MaxVersion {
		lines = append(lines, "Stable: "+d.Crate.MaxStableVersion)
	}
	lines = append(lines, "Downloads: "+humanize.Comma(int64(d.Crate.Downloads)))
	if d.Crate.RecentDownloads > 0 {
		lines = append(lines, "Recent: "+humanize.Comma(int64(d.Crate.RecentDownloads)))
	}
	if !d.Crate.UpdatedAt.IsZero() {
		lines = append(lines, "Updated: "+d.Crate.UpdatedAt.UTC().Format(time.DateOnly))
	}
	if !d.Crate.CreatedAt.IsZero() {
		lines = append(lines, "Created: "+d.Crate.CreatedAt.UTC().Format(time.DateOnly))
	}

	if d.Crate.Homepage != "" {
		lines = append(lines, wrap("Homepage: "+d.Crate.Homepage, width)...)
	}
	if d.Crate.Repository != "" {
		lines = append(lines, wrap("Repository: "+d.Crate.Repository, width)...)
	}
	if d.Crate.Documentation != "" {
		lines = append(lines, wrap("Docs: "+d.Crate.Documentation, width)...)
	}

	if len(d.Keywords) > 0 {
		lines = append(lines, wrap("Keywords: "+strings.Join(d.Keywords, ", "), width)...)
	}
	if len(d.Categories) > 0 {
		lines = append(lines, wrap("Categories: "+strings.Join(d.Categories, ", "), width)...)
	}

	if len(d.Versions) > 0 {
		lines = append(lines, "", "Versions:")
		shown := d.Versions
		if len(shown) > 8 {
			shown = shown[:8]
		}
		for _, v := range shown {
			label := "  " + v.Num
			if v.Yanked {
				label += " (yanked)"
			}
			if !v.CreatedAt.IsZero() {
				label += "  " + v.CreatedAt.UTC().Format(time.DateOnly)
			}
			lines = append(lines, label)
		}
		if extra := len(d.Versions) - len(shown); extra > 0 {
			lines = append(lines, "  ...and "+humanize.Comma(int64(extra))+" more")
		}
	}
	return lines
}
