// Package docx provides a serializer that fills a journal article
// template (a .docx file with {{placeholder}} tokens) from a
// manuscript record.
package docx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ijma-tools/typeset/affiliation"
	"github.com/ijma-tools/typeset/format"
	"github.com/ijma-tools/typeset/manuscript"
)

// Format implements the Word document format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "docx"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Typeset journal article (Word document)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"docx"}
}

// CanParse returns false: this format only serializes.
func (f *Format) CanParse(peek []byte) bool {
	return false
}

// Serialize fills the template with the first manuscript record and
// writes the finished document. SerializeOptions.TemplateFile is
// required.
func (f *Format) Serialize(w io.Writer, records []*manuscript.Manuscript, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}
	if opts.TemplateFile == "" {
		return fmt.Errorf("docx serialization requires a template file")
	}
	if len(records) == 0 {
		return fmt.Errorf("no manuscript records to serialize")
	}
	if len(records) > 1 {
		return fmt.Errorf("docx serialization takes a single manuscript, got %d", len(records))
	}

	t, err := OpenTemplate(opts.TemplateFile)
	if err != nil {
		return err
	}
	return fillTemplate(w, t, records[0], opts)
}

// fillTemplate runs token substitution on an already-open template.
func fillTemplate(w io.Writer, t *Template, m *manuscript.Manuscript, opts *format.SerializeOptions) error {
	var norm *affiliation.Normalizer
	if opts.NormalizeAffiliations {
		norm = affiliation.NewNormalizer(opts.Vocabulary)
	}

	in := newInserter(t, m, norm)
	if err := in.process(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := t.WriteTo(&buf); err != nil {
		return err
	}
	if _, err := io.Copy(w, &buf); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func init() {
	format.Register(&Format{})
}
