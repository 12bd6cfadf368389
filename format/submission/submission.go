// Package submission provides a format plugin that parses manuscript
// submission pages exported from the journal's editorial system.
package submission

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/ijma-tools/typeset/format"
	"github.com/ijma-tools/typeset/manuscript"
)

// Format implements the submission-page HTML format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format = (*Format)(nil)
	_ format.Parser = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "submission"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Editorial-system submission page (HTML)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"html", "htm"}
}

// CanParse returns true if the input looks like a submission page.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '<' {
		return false
	}
	lower := bytes.ToLower(peek)
	return bytes.Contains(lower, []byte("<html")) || bytes.Contains(lower, []byte("<!doctype html"))
}

// Parse reads a submission page and returns a single manuscript record.
// Missing fields stay empty; the page layout varies between exports and
// a partial record is still useful.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*manuscript.Manuscript, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse submission HTML: %w", err)
	}

	m := manuscript.New()
	m.Code = fieldsetRowValue(doc, 1)
	m.Title = elementText(findByID(doc, "td_manu_ttl"))
	m.ResearchType = extractResearchType(doc)
	m.DateReceived = manuscript.StripTimestamp(fieldsetRowValue(doc, 9))
	m.DateAccepted = manuscript.StripTimestamp(fieldsetRowValue(doc, 11))
	m.Authors = extractAuthors(doc)

	if opts.Strict && (m.Title == "" || len(m.Authors) == 0) {
		return nil, fmt.Errorf("submission page %s is missing title or authors", opts.SourceName)
	}

	return []*manuscript.Manuscript{m}, nil
}

// fieldsetRowValue returns the span text of the second cell of the Nth
// row (1-based) of a table under a fieldset. The metadata fieldset
// table holds one field per row, each value wrapped in a span: code in
// row 1, receive date in row 9, acceptance date in row 11. The span
// requirement keeps the author table from matching.
func fieldsetRowValue(doc *html.Node, row int) string {
	for _, fieldset := range findAll(doc, "fieldset") {
		for _, table := range findAll(fieldset, "table") {
			rows := tableRows(table)
			if row > len(rows) {
				continue
			}
			cells := childElements(rows[row-1], "td")
			if len(cells) < 2 {
				continue
			}
			if spans := findAll(cells[1], "span"); len(spans) > 0 {
				return elementText(spans[0])
			}
		}
	}
	return ""
}

// extractResearchType scans table rows for a label cell mentioning the
// article type and returns the value cell next to it.
func extractResearchType(doc *html.Node) string {
	for _, table := range findAll(doc, "table") {
		for _, row := range tableRows(table) {
			cells := childElements(row, "td")
			if len(cells) < 2 {
				continue
			}
			label := strings.ToLower(elementText(cells[0]))
			if strings.Contains(label, "type") {
				return elementText(cells[1])
			}
		}
	}
	return ""
}

// extractAuthors walks every table looking for author rows: six or more
// cells, with name, email and affiliation in the first, second and
// sixth columns.
func extractAuthors(doc *html.Node) []manuscript.Author {
	var authors []manuscript.Author
	for _, table := range findAll(doc, "table") {
		for _, row := range tableRows(table) {
			cells := childElements(row, "td")
			if len(cells) < 6 {
				continue
			}
			name := elementText(cells[0])
			if name == "" {
				continue
			}
			authors = append(authors, manuscript.Author{
				Name:        name,
				Email:       elementText(cells[1]),
				Affiliation: elementText(cells[5]),
			})
		}
	}
	return authors
}

// tableRows returns the tr elements of a table, looking under tbody
// when one is present.
func tableRows(table *html.Node) []*html.Node {
	if tbody := childElements(table, "tbody"); len(tbody) > 0 {
		return childElements(tbody[0], "tr")
	}
	return childElements(table, "tr")
}

// findAll returns every descendant element with the given tag name.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// childElements returns the direct child elements with the given tag.
func childElements(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
		}
	}
	return out
}

// findByID returns the first element with the given id attribute.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// elementText returns the trimmed text content of a node and its
// descendants. Nil nodes yield the empty string.
func elementText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func init() {
	format.Register(&Format{})
}
