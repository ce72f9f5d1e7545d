package readme

import (
	"strings"
	"testing"
)

func TestLines_ParagraphsAndHeadings(t *testing.T) {
	raw := `<h1>tokio</h1><p>A runtime for writing reliable apps.</p><p>Second paragraph.</p>`
	got := Lines(raw, 80)
	want := []string{
		"# tokio",
		"",
		"A runtime for writing reliable apps.",
		"",
		"Second paragraph.",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected render:\n%s", strings.Join(got, "\n"))
	}
}

func TestLines_ListItems(t *testing.T) {
	got := Lines(`<ul><li>fast</li><li>reliable</li></ul>`, 80)
	if len(got) != 2 || got[0] != "• fast" || got[1] != "• reliable" {
		t.Fatalf("unexpected list render: %q", got)
	}
}

func TestLines_PreservesCodeBlockIndentation(t *testing.T) {
	got := Lines("<pre>fn main() {\n    println!(\"hi\");\n}</pre>", 80)
	want := []string{
		"  fn main() {",
		"      println!(\"hi\");",
		"  }",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected pre render:\n%s", strings.Join(got, "\n"))
	}
}

func TestLines_LinksKeepHref(t *testing.T) {
	got := Lines(`<p>See <a href="https://docs.rs/tokio">the docs</a>.</p>`, 80)
	if len(got) != 1 || !strings.Contains(got[0], "the docs (https://docs.rs/tokio)") {
		t.Fatalf("unexpected link render: %q", got)
	}
}

func TestLines_ImagesBecomeAltLabels(t *testing.T) {
	got := Lines(`<p><img src="https://example.com/badge.svg" alt="build status"></p>`, 80)
	if len(got) != 1 || got[0] != "[build status]" {
		t.Fatalf("unexpected image render: %q", got)
	}
}

func TestLines_WrapsAtWidth(t *testing.T) {
	got := Lines("<p>one two three four five</p>", 9)
	for _, line := range got {
		if len(line) > 9 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if strings.Join(got, " ") != "one two three four five" {
		t.Fatalf("wrap lost words: %q", got)
	}
}

func TestLines_EmptyAndPlainText(t *testing.T) {
	if got := Lines("  ", 80); got != nil {
		t.Fatalf("blank input must render nothing, got %q", got)
	}
	got := Lines("just plain text, no markup", 80)
	if len(got) != 1 || got[0] != "just plain text, no markup" {
		t.Fatalf("plain text must pass through: %q", got)
	}
}

func TestLines_DropsScriptAndStyle(t *testing.T) {
	got := Lines(`<script>alert(1)</script><style>p{}</style><p>safe</p>`, 80)
	if len(got) != 1 || got[0] != "safe" {
		t.Fatalf("script/style must be dropped: %q", got)
	}
}
