package affiliation

import (
	"strings"
	"unicode"
)

// Words kept lowercase by SmartTitle unless they open a clause.
var dontCapitalize = map[string]bool{
	"of": true, "and": true, "the": true, "a": true, "an": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
	"with": true, "by": true, "from": true,
}

// titleWords capitalizes the first letter of every word-like segment and
// lowercases the rest, treating any non-letter as a boundary. Hyphenated
// names keep their internal capitals: "al-azhar" becomes "Al-Azhar".
func titleWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case isLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}

// SmartTitle applies the final cosmetic casing pass to an assembled
// affiliation sentence. Commas and periods delimit clauses; the first
// word of each clause is always capitalized, stopwords elsewhere stay
// lowercase. The pass never changes which words were chosen, only case.
func SmartTitle(text string) string {
	if text == "" {
		return text
	}

	// Split at clause boundaries, keeping the delimiters as their own
	// segments so they can be rejoined with correct spacing.
	marked := strings.ReplaceAll(text, ", ", "|,|")
	marked = strings.ReplaceAll(marked, ".", "|.|")
	segments := strings.Split(marked, "|")

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "," || seg == "." || seg == "" {
			parts = append(parts, seg)
			continue
		}
		words := strings.Fields(seg)
		cased := make([]string, 0, len(words))
		for i, word := range words {
			lower := strings.ToLower(word)
			if i == 0 || !dontCapitalize[lower] {
				cased = append(cased, titleWords(lower))
			} else {
				cased = append(cased, lower)
			}
		}
		parts = append(parts, strings.Join(cased, " "))
	}

	var out strings.Builder
	for i, part := range parts {
		out.WriteString(part)
		if part == "," && i+1 < len(parts) {
			next := parts[i+1]
			if next != "," && next != "." && next != "" {
				out.WriteString(" ")
			}
		}
	}
	return out.String()
}
