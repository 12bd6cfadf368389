package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ijma-tools/typeset/format"
	"github.com/ijma-tools/typeset/manuscript"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<w:body>
<w:p><w:r><w:t>{{research_type}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{research_title}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{authors}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{affiliation}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{date_received}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{email}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{citation}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{abstract}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{keywords}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{intro}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{results}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{tables}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{figures}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{references}}</w:t></w:r></w:p>
<w:p><w:r><w:t>Static text with 10% (approx)</w:t></w:r></w:p>
</w:body>
</w:document>`

const testHeaderXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:p><w:r><w:t>{{header_name}}</w:t></w:r></w:p>
</w:hdr>`

const testContentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
</Types>`

const testRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/>
</Relationships>`

// Tiny valid 1x1 PNG.
const testPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func writeTestTemplate(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := map[string]string{
		"[Content_Types].xml":          testContentTypesXML,
		"word/document.xml":            testDocumentXML,
		"word/header1.xml":             testHeaderXML,
		"word/_rels/document.xml.rels": testRelsXML,
	}
	for name, content := range entries {
		fw, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "template.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testManuscript() *manuscript.Manuscript {
	m := manuscript.New()
	m.Code = "IJMA-2025-101"
	m.Title = "outcomes of laparoscopic repair in adults"
	m.ResearchType = "Original Article"
	m.DateReceived = "24-08-2025"
	m.DateAccepted = "21-09-2025"
	m.Keywords = "hernia; laparoscopy"
	m.Abstract = "Background: Hernia repair is common.\nResults: Recurrence was seen in 5% of cases."
	m.Authors = []manuscript.Author{
		{Name: "Ahmed Mohamed Hassan", Email: "ahmed@example.org", Affiliation: "Psychology department, Damietta, alazhar"},
		{Name: "Sara Ibrahim", Email: "sara@example.org", Affiliation: "Faculty of Medicine, Cairo University, Cairo"},
	}
	m.Sections.Introduction = "Hassan et al reported improvement (3)."
	m.Sections.Results = "Recurrence was 5% (n=2)."
	m.Sections.References = "1. First reference.\n2. Second reference."
	m.Tables = []manuscript.Table{{Caption: "Patient outcomes", HTML: tableHTML}}
	m.Figures = []manuscript.Figure{{
		Caption: "Study flowchart",
		Content: `<img src="data:image/png;base64,` + testPNG + `">`,
	}}
	return m
}

func serializedPart(t *testing.T, out []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}
	t.Fatalf("output has no %s", name)
	return ""
}

func TestSerialize(t *testing.T) {
	template := writeTestTemplate(t)

	f := &Format{}
	opts := format.NewSerializeOptions()
	opts.TemplateFile = template

	var out bytes.Buffer
	if err := f.Serialize(&out, []*manuscript.Manuscript{testManuscript()}, opts); err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	doc := serializedPart(t, out.Bytes(), "word/document.xml")

	if strings.Contains(doc, "{{") {
		t.Error("document still contains placeholders")
	}
	for _, want := range []string{
		"Main Subject: [Original Article]",
		"Outcomes of Laparoscopic Repair in Adults",
		"Ahmed Mohamed Hassan",
		"Department of Psychology, Faculty of Medicine, Al-Azhar University, Damietta, Egypt.",
		"2025-08-24",
		"Email: ",
		"ahmed@example.org",
		"Hassan AM, Ibrahim S. Outcomes of Laparoscopic Repair in Adults. IJMA 2025; XX-XX [Article in Press].",
		"Background:",
		"Recurrence was seen in 5.0% of cases.",
		"Keywords: ",
		"Hernia; Laparoscopy;",
		"Table 1:",
		"Patient outcomes",
		"GridTable4-Accent1",
		"Figure 1:",
		"Study flowchart",
		"Static text with 10.0% [approx]",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}

	header := serializedPart(t, out.Bytes(), "word/header1.xml")
	if !strings.Contains(header, "Hassan AM, ") || !strings.Contains(header, "et al.") {
		t.Errorf("header missing short author name: %s", header)
	}

	rels := serializedPart(t, out.Bytes(), "word/_rels/document.xml.rels")
	if !strings.Contains(rels, "media/figure1.png") {
		t.Error("relationships missing figure image")
	}
	serializedPart(t, out.Bytes(), "word/media/figure1.png")

	types := serializedPart(t, out.Bytes(), "[Content_Types].xml")
	if !strings.Contains(types, `Extension="png"`) {
		t.Error("content types missing png default")
	}
}

func TestSerializeRequiresTemplate(t *testing.T) {
	f := &Format{}
	err := f.Serialize(&bytes.Buffer{}, []*manuscript.Manuscript{testManuscript()}, format.NewSerializeOptions())
	if err == nil {
		t.Error("Serialize() without template expected error")
	}
}

func TestSerializeNoRecords(t *testing.T) {
	f := &Format{}
	opts := format.NewSerializeOptions()
	opts.TemplateFile = writeTestTemplate(t)
	if err := f.Serialize(&bytes.Buffer{}, nil, opts); err == nil {
		t.Error("Serialize() with no records expected error")
	}
}

func TestOpenTemplateMissing(t *testing.T) {
	if _, err := OpenTemplate(filepath.Join(t.TempDir(), "missing.docx")); err == nil {
		t.Error("OpenTemplate() of missing file expected error")
	}
}
