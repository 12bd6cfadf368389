// Package format defines the interface for manuscript format plugins.
package format

import (
	"io"

	"github.com/ijma-tools/typeset/affiliation"
	"github.com/ijma-tools/typeset/manuscript"
)

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "submission", "yaml", "docx")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// CanParse returns true if this format can parse the given input
	CanParse(peek []byte) bool
}

// Parser is a format that can parse input into manuscript records.
type Parser interface {
	Format

	// Parse reads input and returns manuscript records.
	// Options is format-specific configuration.
	Parse(r io.Reader, opts *ParseOptions) ([]*manuscript.Manuscript, error)
}

// Serializer is a format that can write manuscript records to output.
type Serializer interface {
	Format

	// Serialize writes manuscript records to the output.
	// Options is format-specific configuration.
	Serialize(w io.Writer, records []*manuscript.Manuscript, opts *SerializeOptions) error
}

// ParseOptions contains options for parsing.
type ParseOptions struct {
	// Strict fails on records with missing required fields
	Strict bool

	// SourceName is an identifier for the source (for error messages)
	SourceName string
}

// SerializeOptions contains options for serialization.
type SerializeOptions struct {
	// TemplateFile is the path to a document template, for formats that
	// fill one in rather than write from scratch.
	TemplateFile string

	// Vocabulary overrides the affiliation vocabulary used when
	// normalizing author affiliations. Nil means the built-in default.
	Vocabulary *affiliation.Vocabulary

	// NormalizeAffiliations runs author affiliations through the
	// normalization engine before rendering.
	NormalizeAffiliations bool

	// Pretty enables pretty-printing (for JSON/YAML formats)
	Pretty bool
}

// NewParseOptions creates ParseOptions with defaults.
func NewParseOptions() *ParseOptions {
	return &ParseOptions{}
}

// NewSerializeOptions creates SerializeOptions with defaults.
func NewSerializeOptions() *SerializeOptions {
	return &SerializeOptions{
		NormalizeAffiliations: true,
		Pretty:                true,
	}
}
