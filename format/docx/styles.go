package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// runStyle describes the direct formatting applied to a run. Sizes are
// in half-points, colors are RRGGBB hex without the hash.
type runStyle struct {
	Font        string
	Size        int
	Bold        bool
	Italic      bool
	Underline   bool
	Color       string
	Superscript bool
}

const (
	fontBody    = "Times New Roman"
	fontHeading = "Times New Roman (Headings CS)"
	fontHeader  = "Arial Narrow"

	colorRed  = "FF0000"
	colorNavy = "1F3864"
	colorBlue = "2F5496"
)

func bodyStyle(size int) runStyle {
	return runStyle{Font: fontBody, Size: size}
}

// addRun appends a styled run to a paragraph. Newlines in the text
// become explicit line breaks.
func addRun(p *etree.Element, text string, style runStyle) *etree.Element {
	r := p.CreateElement("w:r")
	rPr := r.CreateElement("w:rPr")

	font := style.Font
	if font == "" {
		font = fontBody
	}
	fonts := rPr.CreateElement("w:rFonts")
	fonts.CreateAttr("w:ascii", font)
	fonts.CreateAttr("w:hAnsi", font)

	if style.Bold {
		rPr.CreateElement("w:b")
	}
	if style.Italic {
		rPr.CreateElement("w:i")
	}
	if style.Underline {
		u := rPr.CreateElement("w:u")
		u.CreateAttr("w:val", "single")
	}
	if style.Color != "" {
		color := rPr.CreateElement("w:color")
		color.CreateAttr("w:val", style.Color)
	}

	size := style.Size
	if size == 0 {
		size = 22
	}
	sz := rPr.CreateElement("w:sz")
	sz.CreateAttr("w:val", strconv.Itoa(size))
	szCs := rPr.CreateElement("w:szCs")
	szCs.CreateAttr("w:val", strconv.Itoa(size))

	if style.Superscript {
		vert := rPr.CreateElement("w:vertAlign")
		vert.CreateAttr("w:val", "superscript")
	}

	// Reset character spacing and scale so nothing condensed leaks in
	// from the template styles.
	spacing := rPr.CreateElement("w:spacing")
	spacing.CreateAttr("w:val", "0")
	scale := rPr.CreateElement("w:w")
	scale.CreateAttr("w:val", "100")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			r.CreateElement("w:br")
		}
		if line == "" {
			continue
		}
		t := r.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(line)
	}
	return r
}

// clearParagraph removes every run from a paragraph, keeping its
// paragraph properties.
func clearParagraph(p *etree.Element) {
	for _, child := range p.ChildElements() {
		if child.Tag != "pPr" {
			p.RemoveChild(child)
		}
	}
}

// paragraphText returns the concatenated text of a paragraph's runs.
func paragraphText(p *etree.Element) string {
	var sb strings.Builder
	for _, t := range p.FindElements(".//w:t") {
		sb.WriteString(t.Text())
	}
	return sb.String()
}

// pPr returns the paragraph properties element, creating it in first
// position when absent.
func pPr(p *etree.Element) *etree.Element {
	if existing := p.SelectElement("w:pPr"); existing != nil {
		return existing
	}
	props := etree.NewElement("w:pPr")
	p.InsertChildAt(0, props)
	return props
}

func setChildAttr(parent *etree.Element, tag, attr, val string) {
	child := parent.SelectElement(tag)
	if child == nil {
		child = parent.CreateElement(tag)
	}
	child.RemoveAttr(attr)
	child.CreateAttr(attr, val)
}

// setAlignment sets paragraph justification: left, center, or both.
func setAlignment(p *etree.Element, val string) {
	setChildAttr(pPr(p), "w:jc", "w:val", val)
}

// setSpacing sets the space before and after a paragraph, in twips.
func setSpacing(p *etree.Element, before, after int) {
	props := pPr(p)
	setChildAttr(props, "w:spacing", "w:before", strconv.Itoa(before))
	setChildAttr(props, "w:spacing", "w:after", strconv.Itoa(after))
}

// setHangingIndent indents a paragraph with its first line pulled back,
// the layout used for reference lists. Twips.
func setHangingIndent(p *etree.Element, left, hanging int) {
	props := pPr(p)
	setChildAttr(props, "w:ind", "w:left", strconv.Itoa(left))
	setChildAttr(props, "w:ind", "w:hanging", strconv.Itoa(hanging))
}

// setFirstLineIndent indents only the first line of a paragraph. Twips.
func setFirstLineIndent(p *etree.Element, firstLine int) {
	setChildAttr(pPr(p), "w:ind", "w:firstLine", strconv.Itoa(firstLine))
}

// newParagraphAfter creates an empty paragraph immediately after p and
// returns it.
func newParagraphAfter(p *etree.Element) *etree.Element {
	parent := p.Parent()
	next := etree.NewElement("w:p")
	parent.InsertChildAt(p.Index()+1, next)
	return next
}

// insertAfter places an existing element immediately after p.
func insertAfter(p, el *etree.Element) {
	p.Parent().InsertChildAt(p.Index()+1, el)
}
