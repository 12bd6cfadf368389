// Package jsonfmt provides a format plugin for JSON manuscript records.
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ijma-tools/typeset/format"
	"github.com/ijma-tools/typeset/manuscript"
)

// Format implements the JSON record format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Parser     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "json"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "JSON manuscript records"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"json"}
}

// CanParse returns true if the input looks like JSON.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 {
		return false
	}
	return peek[0] == '{' || peek[0] == '['
}

// Parse reads a JSON record, or an array of records, as manuscripts.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*manuscript.Manuscript, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON input: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON input")
	}

	var records []*manuscript.Manuscript
	if data[0] == '[' {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse JSON records: %w", err)
		}
	} else {
		m := manuscript.New()
		if err := json.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("failed to parse JSON record: %w", err)
		}
		records = append(records, m)
	}

	if opts.Strict {
		for _, m := range records {
			if m.Title == "" {
				return nil, fmt.Errorf("JSON record %s has no title", opts.SourceName)
			}
		}
	}
	return records, nil
}

// Serialize writes manuscript records as a JSON array.
func (f *Format) Serialize(w io.Writer, records []*manuscript.Manuscript, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}

	enc := json.NewEncoder(w)
	if opts.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to serialize JSON records: %w", err)
	}
	return nil
}

func init() {
	format.Register(&Format{})
}
