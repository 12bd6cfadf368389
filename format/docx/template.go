package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Template is an OOXML package loaded into memory. Entries keep their
// original order so the rewritten package diff stays minimal.
type Template struct {
	names []string
	files map[string][]byte

	imageCount int
}

// OpenTemplate reads a .docx template from disk.
func OpenTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return ReadTemplate(bytes.NewReader(data), int64(len(data)))
}

// ReadTemplate reads a .docx template from a reader.
func ReadTemplate(r io.ReaderAt, size int64) (*Template, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open template archive: %w", err)
	}

	t := &Template{files: make(map[string][]byte)}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open template entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read template entry %s: %w", f.Name, err)
		}
		t.names = append(t.names, f.Name)
		t.files[f.Name] = data
	}

	if _, ok := t.files["word/document.xml"]; !ok {
		return nil, fmt.Errorf("template has no word/document.xml")
	}
	return t, nil
}

// Part returns the contents of a package entry.
func (t *Template) Part(name string) ([]byte, bool) {
	data, ok := t.files[name]
	return data, ok
}

// SetPart replaces or adds a package entry.
func (t *Template) SetPart(name string, data []byte) {
	if _, ok := t.files[name]; !ok {
		t.names = append(t.names, name)
	}
	t.files[name] = data
}

// DocumentParts returns the entry names that hold paragraph content:
// the main document plus headers and footers.
func (t *Template) DocumentParts() []string {
	parts := []string{"word/document.xml"}
	for _, name := range t.names {
		base := path.Base(name)
		if path.Dir(name) == "word" &&
			(strings.HasPrefix(base, "header") || strings.HasPrefix(base, "footer")) &&
			strings.HasSuffix(base, ".xml") {
			parts = append(parts, name)
		}
	}
	return parts
}

var relIDRegex = regexp.MustCompile(`^rId(\d+)$`)

// AddImage stores image bytes as a media entry, registers the content
// type and a document relationship, and returns the relationship ID to
// embed in a drawing.
func (t *Template) AddImage(data []byte, ext string) (string, error) {
	t.imageCount++
	mediaName := fmt.Sprintf("word/media/figure%d.%s", t.imageCount, ext)
	t.SetPart(mediaName, data)

	if err := t.ensureContentType(ext); err != nil {
		return "", err
	}
	return t.addRelationship(
		"http://schemas.openxmlformats.org/officeDocument/2006/relationships/image",
		"media/"+path.Base(mediaName),
	)
}

func (t *Template) ensureContentType(ext string) error {
	data, ok := t.files["[Content_Types].xml"]
	if !ok {
		return fmt.Errorf("template has no [Content_Types].xml")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("failed to parse content types: %w", err)
	}
	root := doc.Root()
	for _, def := range root.SelectElements("Default") {
		if def.SelectAttrValue("Extension", "") == ext {
			return nil
		}
	}

	contentType := "image/" + ext
	if ext == "jpg" {
		contentType = "image/jpeg"
	}
	def := root.CreateElement("Default")
	def.CreateAttr("Extension", ext)
	def.CreateAttr("ContentType", contentType)

	out, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("failed to serialize content types: %w", err)
	}
	t.SetPart("[Content_Types].xml", out)
	return nil
}

func (t *Template) addRelationship(relType, target string) (string, error) {
	const relsName = "word/_rels/document.xml.rels"
	data, ok := t.files[relsName]
	if !ok {
		data = []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to parse document relationships: %w", err)
	}
	root := doc.Root()

	maxID := 0
	for _, rel := range root.SelectElements("Relationship") {
		if m := relIDRegex.FindStringSubmatch(rel.SelectAttrValue("Id", "")); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > maxID {
				maxID = n
			}
		}
	}

	id := "rId" + strconv.Itoa(maxID+1)
	rel := root.CreateElement("Relationship")
	rel.CreateAttr("Id", id)
	rel.CreateAttr("Type", relType)
	rel.CreateAttr("Target", target)

	out, err := doc.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("failed to serialize document relationships: %w", err)
	}
	t.SetPart(relsName, out)
	return id, nil
}

// WriteTo writes the package back out as a .docx archive.
func (t *Template) WriteTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, name := range t.names {
		fw, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("failed to create archive entry %s: %w", name, err)
		}
		if _, err := fw.Write(t.files[name]); err != nil {
			return fmt.Errorf("failed to write archive entry %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}
