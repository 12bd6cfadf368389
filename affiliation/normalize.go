package affiliation

import (
	"regexp"
	"strings"
)

// Provenance records how a field got its value. Inferred and extracted
// fields render identically in the normalized sentence; the distinction
// exists for callers that want to review low-confidence output.
type Provenance int

const (
	// Absent means no rule recognized the field in the input.
	Absent Provenance = iota
	// Extracted means a pattern matched the field directly.
	Extracted
	// Inferred means the value was derived from another field or a
	// positional heuristic rather than matched directly.
	Inferred
)

func (p Provenance) String() string {
	switch p {
	case Extracted:
		return "extracted"
	case Inferred:
		return "inferred"
	default:
		return "absent"
	}
}

// Field is one normalized affiliation component.
type Field struct {
	Value      string
	Provenance Provenance
}

// Result holds the five canonical fields plus the assembled sentence.
// Fields appear in the sentence in the order they are declared here;
// absent fields are omitted, never placeholdered.
type Result struct {
	Department Field
	Faculty    Field
	University Field
	City       Field
	Country    Field

	// Normalized is the comma-joined, title-cased sentence ending in a
	// period. Empty input yields ".".
	Normalized string
}

// Normalizer runs the extraction pipeline against one vocabulary. It is
// stateless between calls and safe for concurrent use.
type Normalizer struct {
	vocab *Vocabulary
}

// NewNormalizer returns a Normalizer over the given vocabulary, or the
// compiled-in default when vocab is nil.
func NewNormalizer(vocab *Vocabulary) *Normalizer {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Normalizer{vocab: vocab}
}

// Normalize is a convenience wrapper using the default vocabulary.
func Normalize(raw string) string {
	return NewNormalizer(nil).Normalize(raw)
}

// Normalize converts a free-text affiliation into the canonical sentence.
func (n *Normalizer) Normalize(raw string) string {
	return n.NormalizeDetailed(raw).Normalized
}

// Trailing tokens stripped when the whole first clause is adopted as the
// department name.
var trailingGarbageRegex = regexp.MustCompile(`(?i)\s+(Facality|Faclty|Of|Medicine|Domitta|Damitta)\b.*$`)

// NormalizeDetailed runs the full pipeline and reports per-field
// provenance alongside the assembled sentence.
func (n *Normalizer) NormalizeDetailed(raw string) Result {
	v := n.vocab

	text := Clean(stripParens(Clean(raw)))
	clauses := splitClauses(text)

	dept := extractDepartment(text)
	faculty := extractFaculty(v, clauses)
	country := extractCountry(v, clauses)
	university := extractUniversity(v, clauses)
	if university == "" {
		university = rescanUniversity(v, clauses)
	}

	deptProv := directProvenance(dept)
	if dept == "" && len(clauses) > 0 {
		if d := firstClauseDepartment(v, clauses[0]); d != "" {
			dept = d
			deptProv = Inferred
		}
	}

	used := markUsedClauses(clauses, dept, faculty, country, university)

	city := extractCity(v, clauses, used)
	cityProv := directProvenance(city)
	if city == "" && university != "" {
		if c := cityFromUniversity(v, university); c != "" {
			city = c
			cityProv = Inferred
		}
	}

	facultyProv := directProvenance(faculty)
	if faculty == "" && dept != "" {
		if f := facultyFromDepartment(v, dept); f != "" {
			faculty = f
			facultyProv = Inferred
		}
	}

	countryProv := directProvenance(country)
	if country == "" && city != "" {
		if c, ok := v.CityToCountry[strings.ToLower(city)]; ok {
			country = c
			countryProv = Inferred
		}
	}

	var parts []string
	if dept != "" {
		parts = append(parts, "Department of "+dept)
	}
	if faculty != "" {
		parts = append(parts, faculty)
	}
	if university != "" {
		parts = append(parts, university)
	}
	if city != "" {
		parts = append(parts, city)
	}
	if country != "" {
		parts = append(parts, country)
	}

	return Result{
		Department: Field{Value: dept, Provenance: deptProv},
		Faculty:    Field{Value: faculty, Provenance: facultyProv},
		University: Field{Value: university, Provenance: directProvenance(university)},
		City:       Field{Value: city, Provenance: cityProv},
		Country:    Field{Value: country, Provenance: countryProv},
		Normalized: SmartTitle(strings.Join(parts, ", ") + "."),
	}
}

func directProvenance(value string) Provenance {
	if value == "" {
		return Absent
	}
	return Extracted
}

// markUsedClauses records which clauses are already attributed to an
// extracted field. Matching is deliberately loose: a clause counts as
// consumed when its lowercased form equals, contains, or is contained in
// any extracted field's text. This trades a small risk of over-consuming
// a partially overlapping clause for never assigning the same text to
// two fields.
func markUsedClauses(clauses []string, fields ...string) map[string]bool {
	var claimed []string
	for _, f := range fields {
		if f != "" {
			claimed = append(claimed, strings.ToLower(f))
		}
	}

	used := make(map[string]bool)
	for _, clause := range clauses {
		lower := strings.ToLower(clause)
		for _, item := range claimed {
			if lower == item || strings.Contains(lower, item) || strings.Contains(item, lower) {
				used[clause] = true
				break
			}
		}
	}
	return used
}

// firstClauseDepartment treats the entire first clause as the department
// name when nothing in it looks like a university, city, faculty, or
// center clause. Trailing garbage tokens are stripped before adopting it.
func firstClauseDepartment(v *Vocabulary, first string) string {
	lower := strings.ToLower(first)

	// A center clause is handled by the university extractor instead.
	if strings.Contains(lower, "center") || strings.Contains(lower, "centre") {
		return ""
	}
	if hasFacultyKeyword(lower) {
		return ""
	}
	if strings.Contains(lower, "univ") {
		return ""
	}
	for _, city := range v.cityKeys {
		if strings.Contains(lower, city) {
			return ""
		}
	}
	if _, isAlias := v.UnivAliases[lower]; isAlias {
		return ""
	}

	return strings.TrimSpace(trailingGarbageRegex.ReplaceAllString(titleWords(first), ""))
}

// facultyFromDepartment infers the hosting faculty from the department
// name via substring lookup in the department-to-faculty table.
func facultyFromDepartment(v *Vocabulary, dept string) string {
	deptLower := strings.ToLower(dept)
	for _, key := range v.deptKeys {
		if strings.Contains(deptLower, key) {
			return v.DeptToFaculty[key]
		}
	}
	return ""
}

// cityFromUniversity adopts a city whose name is embedded in the
// extracted university text, in corrected spelling.
func cityFromUniversity(v *Vocabulary, university string) string {
	univLower := strings.ToLower(university)
	for _, city := range v.cityKeys {
		if !strings.Contains(univLower, city) {
			continue
		}
		if corrected, ok := v.CityCorrections[city]; ok {
			return corrected
		}
		return titleWords(city)
	}
	return ""
}
