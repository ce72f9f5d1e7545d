package view

import (
	"strings"
	"testing"
	"time"

	"github.com/glabrego/crates-cli/internal/registry"
	"github.com/glabrego/crates-cli/internal/tui/mode"
	tuitheme "github.com/glabrego/crates-cli/internal/tui/theme"
)

func plain(s string) string {
	return stripANSIText(s)
}

func TestRenderCrateLine_Layout(t *testing.T) {
	th := tuitheme.Default()
	line := plain(RenderCrateLine(CrateLineParams{
		Crate: registry.Crate{
			Name:        "tokio",
			Description: "async runtime",
			Downloads:   1234567,
			UpdatedAt:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		Active: true,
		Width:  60,
	}, th))
	if !strings.Contains(line, "2026-02-01") {
		t.Fatalf("updated date missing: %q", line)
	}
	if !strings.HasPrefix(line, " > tokio") {
		t.Fatalf("active row must carry the cursor marker: %q", line)
	}
	if !strings.Contains(line, "1,234,567") {
		t.Fatalf("downloads must be comma-grouped: %q", line)
	}
	if !strings.Contains(line, "async runtime") {
		t.Fatalf("description missing: %q", line)
	}
}

func TestRenderCrateLine_TruncatesToWidth(t *testing.T) {
	th := tuitheme.Default()
	line := plain(RenderCrateLine(CrateLineParams{
		Crate: registry.Crate{Name: "very-long-crate-name", Description: strings.Repeat("x", 200), Downloads: 5},
		Width: 40,
	}, th))
	if len(line) > 40 {
		t.Fatalf("row exceeds width %d: %q", len(line), line)
	}
}

func TestSummaryPanel_Cycle(t *testing.T) {
	if PanelNewCrates.Next() != PanelMostDownloaded {
		t.Fatal("new crates must advance to most downloaded")
	}
	if PanelJustUpdated.Next() != PanelNewCrates {
		t.Fatal("panel cycle must wrap forward")
	}
	if PanelNewCrates.Previous() != PanelJustUpdated {
		t.Fatal("panel cycle must wrap backward")
	}
}

func TestRenderSummary_ShowsTotalsAndPanels(t *testing.T) {
	th := tuitheme.Default()
	out := plain(RenderSummary(registry.Summary{
		NumCrates:      150000,
		NumDownloads:   98765432100,
		NewCrates:      []registry.Crate{{Name: "fresh"}},
		MostDownloaded: []registry.Crate{{Name: "serde", Downloads: 500000000}},
		JustUpdated:    []registry.Crate{{Name: "tokio"}},
	}, PanelMostDownloaded, 0, 120, th))
	for _, want := range []string{"150,000", "New Crates", "Most Downloaded", "Just Updated", "fresh", "serde", "tokio"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestDetailMetaLines(t *testing.T) {
	wrap := func(s string, _ int) []string { return []string{s} }
	lines := DetailMetaLines(registry.Detail{
		Crate: registry.Crate{
			Name:        "tokio",
			Description: "async runtime",
			MaxVersion:  "1.40.0",
			Downloads:   250000000,
			Repository:  "https://github.com/tokio-rs/tokio",
		},
		Versions: []registry.Version{{Num: "1.40.0"}, {Num: "1.39.0", Yanked: true}},
		Keywords: []string{"async", "io"},
	}, 80, wrap)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"tokio", "Latest: 1.40.0", "250,000,000", "Keywords: async, io", "1.39.0 (yanked)"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("detail missing %q:\n%s", want, joined)
		}
	}
}

func TestRenderPopup_ErrorVsInfo(t *testing.T) {
	th := tuitheme.Default()
	errBox := plain(RenderPopup("it broke", true, 80, 24, th))
	if !strings.Contains(errBox, "Error") || !strings.Contains(errBox, "it broke") {
		t.Fatalf("error popup malformed:\n%s", errBox)
	}
	infoBox := plain(RenderPopup("served from cache", false, 80, 24, th))
	if !strings.Contains(infoBox, "Info") || !strings.Contains(infoBox, "served from cache") {
		t.Fatalf("info popup malformed:\n%s", infoBox)
	}
}

func TestFooter_ShowsPageOfMax(t *testing.T) {
	th := tuitheme.Default()
	out := plain(Footer(mode.Picker, "downloads", 2, 5, 25, "net", th))
	for _, want := range []string{"picker", "downloads", "2/5", "25 shown", `"net"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
}
