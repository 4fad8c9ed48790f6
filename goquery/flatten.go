package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kbharvest"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var _ kbharvest.Converter = (*Flattener)(nil)

// flattenSelector lists the elements kept by Flattener, matched in document order.
const flattenSelector = "h1, h2, h3, p, li"

// Flattener converts an HTML fragment to a flat markdown-like text. Only
// headings up to level 3, paragraphs and list items are kept; every other
// structure is dropped. Nested matches are emitted once per element, so a
// paragraph inside a list item appears twice.
type Flattener struct{}

// NewFlattener creates a new Flattener.
func NewFlattener() *Flattener {
	return &Flattener{}
}

// Convert flattens the fragment. Each kept element becomes one line followed
// by a blank line; elements without text are skipped.
func (f *Flattener) Convert(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", kbharvest.Errorf(kbharvest.EINVALID, "failed to parse HTML: %v", err)
	}

	var lines []string
	doc.Find(flattenSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(joinText(sel.Nodes[0]))
		if text == "" {
			return
		}
		switch goquery.NodeName(sel) {
		case "h1":
			lines = append(lines, "# "+text)
		case "h2":
			lines = append(lines, "## "+text)
		case "h3":
			lines = append(lines, "### "+text)
		case "li":
			lines = append(lines, "- "+text)
		default:
			lines = append(lines, text)
		}
		lines = append(lines, "")
	})

	return strings.Join(lines, "\n"), nil
}

// joinText joins the descendant text nodes of n with a single space.
func joinText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
