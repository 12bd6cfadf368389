package docx

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/ijma-tools/typeset/affiliation"
	"github.com/ijma-tools/typeset/manuscript"
)

// tokens are the template placeholders, replaced in this order. The
// first token found in a paragraph wins.
var tokens = []string{
	"{{header_name}}",
	"{{research_type}}",
	"{{research_title}}",
	"{{authors}}",
	"{{affiliation}}",
	"{{date_received}}",
	"{{date_accepted}}",
	"{{email}}",
	"{{citation}}",
	"{{abstract}}",
	"{{keywords}}",
	"{{intro}}",
	"{{aim}}",
	"{{methods}}",
	"{{results}}",
	"{{tables}}",
	"{{figures}}",
	"{{discussion}}",
	"{{references}}",
}

// inserter fills a template from one manuscript record.
type inserter struct {
	t *Template
	m *manuscript.Manuscript

	title  string
	shorts []string
	marks  []manuscript.AuthorMark
	list   []manuscript.NumberedAffiliation
}

func newInserter(t *Template, m *manuscript.Manuscript, norm *affiliation.Normalizer) *inserter {
	names := make([]string, len(m.Authors))
	affs := make([]string, len(m.Authors))
	for i, a := range m.Authors {
		names[i] = manuscript.DirectOrder(a.Name)
		if norm != nil {
			affs[i] = norm.Normalize(a.Affiliation)
		} else {
			affs[i] = manuscript.FormatTitle(a.Affiliation) + "."
		}
	}

	marks, list := manuscript.NumberAffiliations(names, affs)
	return &inserter{
		t:      t,
		m:      m,
		title:  manuscript.FormatTitle(m.Title),
		shorts: manuscript.ShortAuthors(names),
		marks:  marks,
		list:   list,
	}
}

// citationYear prefers the acceptance year over the current one.
func (in *inserter) citationYear() string {
	date := strings.TrimSpace(in.m.DateAccepted)
	if parts := strings.Split(date, "-"); len(parts) == 3 && len(parts[2]) == 4 {
		return parts[2]
	}
	return fmt.Sprintf("%d", time.Now().Year())
}

// process replaces the placeholders in every document part, then
// applies the global text rules to untouched body paragraphs.
func (in *inserter) process() error {
	for _, part := range in.t.DocumentParts() {
		data, _ := in.t.Part(part)
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(data); err != nil {
			return fmt.Errorf("failed to parse %s: %w", part, err)
		}

		paragraphs := doc.FindElements("//w:p")
		for _, p := range paragraphs {
			text := paragraphText(p)
			for _, token := range tokens {
				if strings.Contains(text, token) {
					clearParagraph(p)
					in.insert(p, token)
					break
				}
			}
		}

		if part == "word/document.xml" {
			in.applyGlobalRules(paragraphs)
		}

		out, err := doc.WriteToBytes()
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", part, err)
		}
		in.t.SetPart(part, out)
	}
	return nil
}

// applyGlobalRules converts brackets and percentages in static body
// paragraphs, leaving untouched any paragraph the rules don't change.
func (in *inserter) applyGlobalRules(paragraphs []*etree.Element) {
	for _, p := range paragraphs {
		text := paragraphText(p)
		if text == "" {
			continue
		}
		formatted := decimalPercents(convertBrackets(text))
		if formatted == text {
			continue
		}
		clearParagraph(p)
		addRun(p, formatted, bodyStyle(20))
	}
}

func (in *inserter) insert(p *etree.Element, token string) {
	switch token {
	case "{{header_name}}":
		in.insertHeaderName(p)
	case "{{research_type}}":
		addRun(p, manuscript.FormatResearchType(in.m.ResearchType),
			runStyle{Font: fontBody, Size: 26, Color: colorRed})
	case "{{research_title}}":
		addRun(p, spaceSymbols(decimalPercents(in.title)),
			runStyle{Font: fontBody, Size: 30, Bold: true})
	case "{{authors}}":
		in.insertAuthors(p)
	case "{{affiliation}}":
		in.insertAffiliations(p)
	case "{{date_received}}":
		addRun(p, manuscript.FlipDate(in.m.DateReceived), runStyle{Font: fontHeading, Size: 20})
	case "{{date_accepted}}":
		addRun(p, manuscript.FlipDate(in.m.DateAccepted), runStyle{Font: fontHeading, Size: 20})
	case "{{email}}":
		addRun(p, "Email: ", runStyle{Font: fontHeading, Size: 20, Bold: true})
		addRun(p, in.m.CorrespondingEmail(), runStyle{Font: fontHeading, Size: 20})
	case "{{citation}}":
		addRun(p, "Citation: ", runStyle{Font: fontHeading, Size: 17, Bold: true, Color: colorRed})
		addRun(p, manuscript.FormatCitation(in.title, in.shorts, in.citationYear()),
			runStyle{Font: fontHeading, Size: 18})
	case "{{abstract}}":
		in.insertAbstract(p)
	case "{{keywords}}":
		addRun(p, "Keywords: ", runStyle{Font: fontHeading, Size: 22, Bold: true, Color: colorBlue})
		addRun(p, manuscript.FormatKeywords(in.m.Keywords), runStyle{Font: fontHeading, Size: 20})
	case "{{intro}}":
		in.insertSection(p, in.m.Sections.Introduction, true, false)
	case "{{aim}}":
		in.insertSection(p, in.m.Sections.Aim, true, false)
	case "{{methods}}":
		in.insertSection(p, in.m.Sections.Methods, true, false)
	case "{{results}}":
		in.insertSection(p, in.m.Sections.Results, false, false)
	case "{{discussion}}":
		in.insertSection(p, in.m.Sections.Discussion, true, false)
	case "{{references}}":
		in.insertSection(p, in.m.Sections.References, false, true)
	case "{{tables}}":
		in.insertTables(p)
	case "{{figures}}":
		in.insertFigures(p)
	}
}

// insertHeaderName writes the running header: first author's short name
// and an italic "et al.".
func (in *inserter) insertHeaderName(p *etree.Element) {
	first := ""
	if len(in.shorts) > 0 {
		first = in.shorts[0] + ", "
	}
	style := runStyle{Font: fontHeader, Size: 22, Bold: true, Color: colorNavy}
	addRun(p, first, style)
	style.Italic = true
	addRun(p, "et al.", style)
}

// insertAuthors writes the author line: superscript affiliation marker,
// then the name, then a semicolon, per author.
func (in *inserter) insertAuthors(p *etree.Element) {
	name := runStyle{Font: fontBody, Size: 20, Bold: true}
	marker := runStyle{Font: fontBody, Size: 20, Bold: true, Color: colorRed, Superscript: true}

	for _, mark := range in.marks {
		if mark.Marker != "" {
			addRun(p, " "+mark.Marker+" ", marker)
		} else {
			addRun(p, " ", name)
		}
		addRun(p, mark.Name, name)
		addRun(p, ";", name)
	}
}

// insertAffiliations writes the numbered affiliation list, one per
// line, numbers as red superscripts.
func (in *inserter) insertAffiliations(p *etree.Element) {
	setAlignment(p, "left")
	number := runStyle{Font: fontBody, Size: 16, Color: colorRed, Superscript: true}
	text := runStyle{Font: fontBody, Size: 16}

	for i, aff := range in.list {
		addRun(p, fmt.Sprintf("%d", aff.Number), number)
		suffix := "\n"
		if i == len(in.list)-1 {
			suffix = ""
		}
		addRun(p, " "+aff.Text+suffix, text)
	}
}

// insertAbstract writes one paragraph per labeled abstract section,
// label bold, hanging indent, justified.
func (in *inserter) insertAbstract(p *etree.Element) {
	sections := manuscript.SplitAbstract(in.m.Abstract)
	current := p
	for i, section := range sections {
		setAlignment(current, "both")
		setSpacing(current, 0, 120)
		setHangingIndent(current, 720, 720)

		addRun(current, section.Label, runStyle{Font: fontBody, Size: 16, Bold: true})
		addRun(current, " ", runStyle{Font: fontBody, Size: 16})
		addRun(current, spaceSymbols(decimalPercents(section.Content)),
			runStyle{Font: fontBody, Size: 16})

		if i < len(sections)-1 {
			current = newParagraphAfter(current)
		}
	}
}

// insertSection writes a body section as justified paragraphs. Rich
// sections get citation superscripts and "et al" emphasis; reference
// lists get a hanging indent, everything else a first-line indent.
func (in *inserter) insertSection(p *etree.Element, content string, rich, references bool) {
	content = manuscript.JoinParagraphs(content)
	if content == "" {
		return
	}

	current := p
	paragraphs := strings.Split(content, "\n\n")
	for i, text := range paragraphs {
		setAlignment(current, "both")
		if rich {
			addRichText(current, text, 20)
		} else {
			addRun(current, applyTextRules(text), bodyStyle(20))
		}

		if i < len(paragraphs)-1 {
			current = newParagraphAfter(current)
			if references {
				setHangingIndent(current, 720, 720)
			} else {
				setFirstLineIndent(current, 720)
			}
		}
	}
}

// insertTables renders each manuscript table: centered caption, the
// grid itself, and a spacing paragraph after.
func (in *inserter) insertTables(p *etree.Element) {
	anchor := p
	for i, table := range in.m.Tables {
		num := i + 1
		caption := strings.TrimSpace(table.Caption)
		if caption == "" {
			caption = fmt.Sprintf("Table %d:", num)
		} else {
			caption = fmt.Sprintf("Table %d: %s", num, caption)
		}

		captionPara := newParagraphAfter(anchor)
		setAlignment(captionPara, "center")
		setSpacing(captionPara, 120, 0)
		in.addCaption(captionPara, caption)
		anchor = captionPara

		grid := parseTableGrid(table.HTML)
		if grid == nil {
			fallback := newParagraphAfter(anchor)
			addRun(fallback, stripTags(table.HTML), bodyStyle(20))
			anchor = fallback
			continue
		}

		tbl := buildTable(grid)
		insertAfter(anchor, tbl)

		spacer := newParagraphAfter(tbl)
		setSpacing(spacer, 0, 120)
		anchor = spacer
	}
}

// insertFigures renders each manuscript figure: the decoded image
// centered at column width, caption below.
func (in *inserter) insertFigures(p *etree.Element) {
	anchor := p
	figureNum := 0
	for _, figure := range in.m.Figures {
		figureNum++
		imgPara := newParagraphAfter(anchor)
		setAlignment(imgPara, "center")
		anchor = imgPara

		urls := extractDataImages(figure.Content)
		if len(urls) == 0 {
			if text := stripTags(figure.Content); text != "" {
				addRun(imgPara, text, bodyStyle(20))
			}
		}
		for _, url := range urls {
			data, ext, err := decodeDataImage(url)
			if err != nil {
				addRun(imgPara, "[Image could not be processed]", bodyStyle(20))
				continue
			}
			relID, err := in.t.AddImage(data, ext)
			if err != nil {
				addRun(imgPara, "[Image could not be processed]", bodyStyle(20))
				continue
			}
			cx, cy := imageExtentEMU(data)
			run := imgPara.CreateElement("w:r")
			run.AddChild(buildDrawing(relID, figureNum, cx, cy))
		}

		if caption := strings.TrimSpace(figure.Caption); caption != "" {
			captionPara := newParagraphAfter(anchor)
			setAlignment(captionPara, "center")
			setSpacing(captionPara, 120, 120)
			in.addCaption(captionPara, fmt.Sprintf("Figure %d: %s", figureNum, caption))
			anchor = captionPara
		}
	}
}

// addCaption writes a caption with its "Table N:" or "Figure N:" label
// in bold and the description in regular weight.
func (in *inserter) addCaption(p *etree.Element, caption string) {
	label, desc, found := strings.Cut(caption, ":")
	if !found {
		addRun(p, caption, runStyle{Font: fontBody, Size: 20, Bold: true})
		return
	}
	addRun(p, label+":", runStyle{Font: fontBody, Size: 20, Bold: true})
	if desc = strings.TrimSpace(desc); desc != "" {
		addRun(p, " ", bodyStyle(20))
		addRun(p, desc, bodyStyle(20))
	}
}
