package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
)

// gridCell is one slot of the rectangular table grid built from HTML.
// Non-origin slots covered by a span remember where their origin is.
type gridCell struct {
	text    string
	rowSpan int
	colSpan int

	spanned   bool
	originRow int
	originCol int
}

// parseTableGrid parses the first <table> in the HTML fragment into a
// rectangular grid, expanding rowspan and colspan. Returns nil when no
// table rows are found.
func parseTableGrid(fragment string) [][]gridCell {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var rows []*html.Node
	for _, table := range findAllNodes(doc, "table") {
		rows = findAllNodes(table, "tr")
		if len(rows) > 0 {
			break
		}
	}
	if len(rows) == 0 {
		return nil
	}

	// Column count from the widest row.
	maxCols := 0
	for _, row := range rows {
		cols := 0
		for _, cell := range rowCells(row) {
			cols += intAttr(cell, "colspan", 1)
		}
		if cols > maxCols {
			maxCols = cols
		}
	}
	if maxCols == 0 {
		return nil
	}

	grid := make([][]gridCell, len(rows))
	occupied := make([][]bool, len(rows))
	for i := range grid {
		grid[i] = make([]gridCell, maxCols)
		occupied[i] = make([]bool, maxCols)
	}

	for rowIdx, row := range rows {
		colIdx := 0
		for _, cell := range rowCells(row) {
			for colIdx < maxCols && occupied[rowIdx][colIdx] {
				colIdx++
			}
			if colIdx >= maxCols {
				break
			}

			rowSpan := intAttr(cell, "rowspan", 1)
			colSpan := intAttr(cell, "colspan", 1)

			for r := 0; r < rowSpan && rowIdx+r < len(rows); r++ {
				for c := 0; c < colSpan && colIdx+c < maxCols; c++ {
					occupied[rowIdx+r][colIdx+c] = true
					if r == 0 && c == 0 {
						grid[rowIdx][colIdx] = gridCell{
							text:    cellText(cell),
							rowSpan: rowSpan,
							colSpan: colSpan,
						}
					} else {
						grid[rowIdx+r][colIdx+c] = gridCell{
							spanned:   true,
							originRow: rowIdx,
							originCol: colIdx,
						}
					}
				}
			}
			colIdx += colSpan
		}
	}
	return grid
}

// rowCells returns the td and th children of a table row.
func rowCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, c)
		}
	}
	return cells
}

// cellText flattens a cell to text, turning nested block boundaries
// into newlines.
func cellText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		if node.Type == html.ElementNode && (node.Data == "br" || node.Data == "p" || node.Data == "div") {
			sb.WriteString("\n")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	lines := strings.Split(sb.String(), "\n")
	var cleaned []string
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

func intAttr(n *html.Node, key string, def int) int {
	for _, attr := range n.Attr {
		if attr.Key == key {
			if v, err := strconv.Atoi(strings.TrimSpace(attr.Val)); err == nil && v > 0 {
				return v
			}
		}
	}
	return def
}

func findAllNodes(n *html.Node, tag string) []*html.Node {
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

// buildTable renders a parsed grid as a w:tbl element: grid-styled,
// centered, header row bold, with gridSpan and vMerge carrying the
// HTML spans over.
func buildTable(grid [][]gridCell) *etree.Element {
	tbl := etree.NewElement("w:tbl")

	tblPr := tbl.CreateElement("w:tblPr")
	style := tblPr.CreateElement("w:tblStyle")
	style.CreateAttr("w:val", "GridTable4-Accent1")
	width := tblPr.CreateElement("w:tblW")
	width.CreateAttr("w:w", "0")
	width.CreateAttr("w:type", "auto")
	jc := tblPr.CreateElement("w:jc")
	jc.CreateAttr("w:val", "center")
	look := tblPr.CreateElement("w:tblLook")
	look.CreateAttr("w:firstRow", "1")
	look.CreateAttr("w:lastRow", "0")
	look.CreateAttr("w:firstColumn", "0")
	look.CreateAttr("w:lastColumn", "0")
	look.CreateAttr("w:noHBand", "0")
	look.CreateAttr("w:noVBand", "0")

	tblGrid := tbl.CreateElement("w:tblGrid")
	if len(grid) > 0 {
		for range grid[0] {
			tblGrid.CreateElement("w:gridCol")
		}
	}

	for rowIdx, row := range grid {
		tr := tbl.CreateElement("w:tr")
		for colIdx, cell := range row {
			// Slots to the right of a span origin are absorbed by the
			// origin cell's gridSpan; only the first column of a span
			// region produces a tc.
			if cell.spanned && colIdx != cell.originCol {
				continue
			}

			tc := tr.CreateElement("w:tc")
			tcPr := tc.CreateElement("w:tcPr")

			switch {
			case cell.spanned:
				// Continuation of a vertical merge.
				origin := grid[cell.originRow][cell.originCol]
				if origin.colSpan > 1 {
					span := tcPr.CreateElement("w:gridSpan")
					span.CreateAttr("w:val", strconv.Itoa(origin.colSpan))
				}
				merge := tcPr.CreateElement("w:vMerge")
				merge.CreateAttr("w:val", "continue")
			default:
				if cell.colSpan > 1 {
					span := tcPr.CreateElement("w:gridSpan")
					span.CreateAttr("w:val", strconv.Itoa(cell.colSpan))
				}
				if cell.rowSpan > 1 {
					merge := tcPr.CreateElement("w:vMerge")
					merge.CreateAttr("w:val", "restart")
				}
			}

			vAlign := tcPr.CreateElement("w:vAlign")
			vAlign.CreateAttr("w:val", "center")

			p := tc.CreateElement("w:p")
			setAlignment(p, "center")
			if !cell.spanned {
				text := spaceSymbolsKeepLines(decimalPercents(convertBrackets(cell.text)))
				addRun(p, text, runStyle{Font: fontBody, Size: 20, Bold: rowIdx == 0})
			}
		}
	}
	return tbl
}
