// Package readme flattens the HTML readme crates.io serves into wrapped
// plain-text lines for the detail viewport.
package readme

import (
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
)

// Lines renders an HTML fragment into display lines at the given width.
// Unparseable input degrades to unescaped, wrapped text.
func Lines(raw string, width int) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if width < 1 {
		width = 1
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return wrapText(strings.TrimSpace(html.UnescapeString(raw)), width)
	}
	body := findBody(doc)
	if body == nil {
		return wrapText(strings.TrimSpace(html.UnescapeString(raw)), width)
	}
	r := renderer{width: width}
	r.blockNodes(body)
	r.flush()
	return trimBlankLines(r.lines)
}

// Text joins the rendered lines, for places that want a single string.
func Text(raw string) string {
	return strings.Join(Lines(raw, 80), "\n")
}

type renderer struct {
	width int
	lines []string
	buf   strings.Builder
}

func (r *renderer) blockNodes(node *nethtml.Node) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		r.node(child)
	}
}

func (r *renderer) node(n *nethtml.Node) {
	switch n.Type {
	case nethtml.TextNode:
		r.inlineText(n.Data)
		return
	case nethtml.ElementNode:
	default:
		return
	}

	switch strings.ToLower(n.Data) {
	case "script", "style", "head":
		return
	case "br":
		r.flush()
	case "p", "div", "section", "article", "blockquote", "table", "tr":
		r.flush()
		r.blockNodes(n)
		r.flush()
		r.blank()
	case "h1", "h2", "h3", "h4", "h5", "h6":
		r.flush()
		title := strings.TrimSpace(collapseSpace(collectText(n)))
		if title != "" {
			r.lines = append(r.lines, wrapText("# "+title, r.width)...)
		}
		r.blank()
	case "li":
		r.flush()
		item := strings.TrimSpace(collapseSpace(collectText(n)))
		if item != "" {
			r.lines = append(r.lines, wrapText("• "+item, r.width)...)
		}
	case "ul", "ol":
		r.flush()
		r.blockNodes(n)
		r.blank()
	case "pre":
		r.flush()
		for _, line := range strings.Split(strings.Trim(collectText(n), "\n"), "\n") {
			r.lines = append(r.lines, "  "+strings.TrimRight(line, " \t"))
		}
		r.blank()
	case "code":
		r.inlineText("`" + collectText(n) + "`")
	case "a":
		text := strings.TrimSpace(collapseSpace(collectText(n)))
		href := attr(n, "href")
		switch {
		case text == "" && href != "":
			r.inlineText(href)
		case href != "" && href != text && strings.HasPrefix(href, "http"):
			r.inlineText(text + " (" + href + ")")
		default:
			r.inlineText(text)
		}
	case "img":
		if alt := attr(n, "alt"); alt != "" {
			r.inlineText("[" + alt + "]")
		}
	default:
		r.blockNodes(n)
	}
}

func (r *renderer) inlineText(s string) {
	s = collapseSpace(s)
	if strings.TrimSpace(s) == "" {
		return
	}
	if r.buf.Len() > 0 && !strings.HasPrefix(s, " ") {
		r.buf.WriteString(" ")
	}
	r.buf.WriteString(strings.TrimSpace(s))
}

func (r *renderer) flush() {
	text := strings.TrimSpace(r.buf.String())
	r.buf.Reset()
	if text == "" {
		return
	}
	r.lines = append(r.lines, wrapText(text, r.width)...)
}

func (r *renderer) blank() {
	if len(r.lines) > 0 && r.lines[len(r.lines)-1] != "" {
		r.lines = append(r.lines, "")
	}
}

func findBody(node *nethtml.Node) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBody(child); found != nil {
			return found
		}
	}
	return nil
}

func attr(node *nethtml.Node, name string) string {
	for _, a := range node.Attr {
		if strings.EqualFold(a.Key, name) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func collectText(node *nethtml.Node) string {
	if node == nil {
		return ""
	}
	if node.Type == nethtml.TextNode {
		return node.Data
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(collectText(child))
	}
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func trimBlankLines(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines) - 1
	for end >= start && strings.TrimSpace(lines[end]) == "" {
		end--
	}
	if end < start {
		return nil
	}
	out := make([]string, 0, end-start+1)
	prevBlank := false
	for i := start; i <= end; i++ {
		blank := strings.TrimSpace(lines[i]) == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, lines[i])
		prevBlank = blank
	}
	return out
}

func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	out := make([]string, 0, 4)
	for _, p := range strings.Split(text, "\n") {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for len(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				out = append(out, word[:width])
				word = word[width:]
			}
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
