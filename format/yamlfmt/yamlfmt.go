// Package yamlfmt provides a format plugin for YAML manuscript records.
package yamlfmt

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ijma-tools/typeset/format"
	"github.com/ijma-tools/typeset/manuscript"
)

// Format implements the YAML record format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Parser     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "yaml"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "YAML manuscript records"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"yaml", "yml"}
}

// CanParse returns true if the input looks like YAML.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 {
		return false
	}
	// YAML documents here start with a document marker or a bare key,
	// never with JSON or markup delimiters.
	if peek[0] == '{' || peek[0] == '[' || peek[0] == '<' {
		return false
	}
	return bytes.HasPrefix(peek, []byte("---")) || bytes.Contains(peek, []byte(":"))
}

// Parse reads one or more YAML documents as manuscript records.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*manuscript.Manuscript, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}

	var records []*manuscript.Manuscript
	dec := yaml.NewDecoder(r)
	for {
		m := manuscript.New()
		if err := dec.Decode(m); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to parse YAML record: %w", err)
		}
		if opts.Strict && m.Title == "" {
			return nil, fmt.Errorf("YAML record %s has no title", opts.SourceName)
		}
		records = append(records, m)
	}
	return records, nil
}

// Serialize writes manuscript records as a multi-document YAML stream.
func (f *Format) Serialize(w io.Writer, records []*manuscript.Manuscript, opts *format.SerializeOptions) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	for _, m := range records {
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("failed to serialize YAML record: %w", err)
		}
	}
	return nil
}

func init() {
	format.Register(&Format{})
}
