// Package manuscript defines the intermediate representation shared by
// all format plugins: one record per submitted manuscript, carrying the
// metadata needed to render a formatted journal document.
package manuscript

// Manuscript is the hub record. Parsers populate it, serializers
// consume it; no plugin talks to another plugin directly.
type Manuscript struct {
	// Code is the submission-system identifier.
	Code string `json:"code,omitempty" yaml:"code,omitempty"`

	Title        string `json:"title" yaml:"title"`
	ResearchType string `json:"research_type,omitempty" yaml:"research_type,omitempty"`

	// Submission dates in day-month-year form, as shown on the
	// submission page (timestamps already stripped).
	DateReceived string `json:"date_received,omitempty" yaml:"date_received,omitempty"`
	DateAccepted string `json:"date_accepted,omitempty" yaml:"date_accepted,omitempty"`

	// Email is the corresponding author's address.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Abstract holds labeled sections as plain text, one
	// "Label: content" paragraph per line.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Keywords are semicolon- or comma-separated.
	Keywords string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	Authors []Author `json:"authors,omitempty" yaml:"authors,omitempty"`

	Sections Sections `json:"sections,omitempty" yaml:"sections,omitempty"`

	Tables  []Table  `json:"tables,omitempty" yaml:"tables,omitempty"`
	Figures []Figure `json:"figures,omitempty" yaml:"figures,omitempty"`
}

// Author pairs a contributor with the raw affiliation text captured from
// the submission system. Affiliations stay positional: the Nth author
// always owns the Nth affiliation, before and after normalization.
type Author struct {
	Name        string `json:"name" yaml:"name"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
}

// Sections holds the manuscript body content.
type Sections struct {
	Introduction string `json:"introduction,omitempty" yaml:"introduction,omitempty"`
	Aim          string `json:"aim,omitempty" yaml:"aim,omitempty"`
	Methods      string `json:"methods,omitempty" yaml:"methods,omitempty"`
	Results      string `json:"results,omitempty" yaml:"results,omitempty"`
	Discussion   string `json:"discussion,omitempty" yaml:"discussion,omitempty"`
	References   string `json:"references,omitempty" yaml:"references,omitempty"`
}

// Table is pasted tabular content: an HTML fragment plus its caption.
type Table struct {
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
	HTML    string `json:"html,omitempty" yaml:"html,omitempty"`
}

// Figure is pasted figure content, typically an <img> tag with a base64
// data URL, plus its caption.
type Figure struct {
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
}

// New returns an empty record with non-nil slices.
func New() *Manuscript {
	return &Manuscript{
		Authors: make([]Author, 0),
		Tables:  make([]Table, 0),
		Figures: make([]Figure, 0),
	}
}

// AuthorNames returns the author names in submission order.
func (m *Manuscript) AuthorNames() []string {
	names := make([]string, len(m.Authors))
	for i, a := range m.Authors {
		names[i] = a.Name
	}
	return names
}

// Affiliations returns the raw affiliation strings in author order,
// including duplicates; deduplication happens at numbering time.
func (m *Manuscript) Affiliations() []string {
	affs := make([]string, len(m.Authors))
	for i, a := range m.Authors {
		affs[i] = a.Affiliation
	}
	return affs
}

// CorrespondingEmail returns the record-level email, falling back to the
// first author email present.
func (m *Manuscript) CorrespondingEmail() string {
	if m.Email != "" {
		return m.Email
	}
	for _, a := range m.Authors {
		if a.Email != "" {
			return a.Email
		}
	}
	return ""
}
