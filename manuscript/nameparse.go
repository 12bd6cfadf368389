package manuscript

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ParsedName holds the components of a personal name.
type ParsedName struct {
	Given  string
	Middle string
	Family string
	Prefix string
	Suffix string
}

var (
	// Suffixes that trail a name, academic credentials included.
	nameSuffixes = []string{"Jr.", "Jr", "Sr.", "Sr", "III", "II", "IV", "PhD", "Ph.D.", "MD", "M.D.", "MSc", "M.Sc."}

	// Nobiliary and patronymic particles that belong to the family name.
	namePrefixes = []string{"van", "von", "de", "del", "di", "da", "le", "la", "du", "bin", "abu", "abd", "el", "al", "ibn"}

	// "Family, Given Middle" format.
	invertedNameRegex = regexp.MustCompile(`^([^,]+),\s*(.+)$`)
)

// ParseName parses a name in either "Given Family" or "Family, Given"
// format. Returns the zero value for empty input.
func ParseName(name string) ParsedName {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ParsedName{}
	}

	var p ParsedName

	// Strip a trailing credential first: "Ahmed Hassan, PhD" is a
	// direct-order name with a suffix, not an inversion.
	name, p.Suffix = trimNameSuffix(name)

	if m := invertedNameRegex.FindStringSubmatch(name); m != nil {
		p.Family = strings.TrimSpace(m[1])
		parts := strings.Fields(strings.TrimSpace(m[2]))
		if len(parts) > 0 {
			p.Given = parts[0]
		}
		if len(parts) > 1 {
			p.Middle = strings.Join(parts[1:], " ")
		}
		return p
	}

	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return ParsedName{}
	case 1:
		p.Family = parts[0]
	default:
		familyStart := len(parts) - 1
		if familyStart > 0 && isNamePrefix(parts[familyStart-1]) {
			p.Prefix = parts[familyStart-1]
			familyStart--
			p.Family = p.Prefix + " " + parts[len(parts)-1]
		} else {
			p.Family = parts[familyStart]
		}
		p.Given = parts[0]
		if familyStart > 1 {
			p.Middle = strings.Join(parts[1:familyStart], " ")
		}
	}
	return p
}

// Direct renders "Given Middle Family Suffix".
func (p ParsedName) Direct() string {
	var parts []string
	for _, s := range []string{p.Given, p.Middle, p.Family, p.Suffix} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Inverted renders "Family, Given Middle Suffix".
func (p ParsedName) Inverted() string {
	out := p.Family
	if p.Given != "" {
		out += ", " + p.Given
	}
	if p.Middle != "" {
		out += " " + p.Middle
	}
	if p.Suffix != "" {
		out += " " + p.Suffix
	}
	return out
}

// ShortName renders the running-header form "Family GI": capitalized
// family name followed by the upper-cased initials of the other names.
func ShortName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	name, _ = trimNameSuffix(name)
	if name == "" {
		return ""
	}
	// Reorder inverted names first so the family name is last.
	if strings.Contains(name, ",") {
		name = ParseName(name).Direct()
	}

	parts := strings.Fields(name)
	last := []rune(parts[len(parts)-1])
	short := strings.ToUpper(string(last[:1])) + strings.ToLower(string(last[1:]))
	var initials string
	for _, given := range parts[:len(parts)-1] {
		r, _ := utf8.DecodeRuneInString(given)
		initials += strings.ToUpper(string(r))
	}
	if initials == "" {
		return short
	}
	return short + " " + initials
}

// DirectOrder rewrites an inverted "Family, Given" name into direct
// order, leaving already-direct names untouched.
func DirectOrder(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || !strings.Contains(name, ",") {
		return strings.Join(strings.Fields(name), " ")
	}
	return ParseName(name).Direct()
}

func trimNameSuffix(name string) (string, string) {
	for _, suffix := range nameSuffixes {
		if strings.HasSuffix(name, ", "+suffix) {
			return strings.TrimSuffix(name, ", "+suffix), suffix
		}
		if strings.HasSuffix(name, " "+suffix) {
			return strings.TrimSuffix(name, " "+suffix), suffix
		}
	}
	return name, ""
}

func isNamePrefix(word string) bool {
	lower := strings.ToLower(word)
	for _, prefix := range namePrefixes {
		if lower == prefix {
			return true
		}
	}
	return false
}

// SplitNames splits a string listing several authors. Semicolons win,
// then pipes, then " and " when no commas suggest inverted names.
func SplitNames(names string) []string {
	names = strings.TrimSpace(names)
	if names == "" {
		return nil
	}

	var parts []string
	switch {
	case strings.Contains(names, ";"):
		parts = strings.Split(names, ";")
	case strings.Contains(names, "|"):
		parts = strings.Split(names, "|")
	case strings.Contains(names, " and ") && !strings.Contains(names, ","):
		parts = strings.Split(names, " and ")
	default:
		return []string{names}
	}

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
