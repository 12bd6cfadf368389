package affiliation

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	parenRegex      = regexp.MustCompile(`[()]`)
	clauseSplit     = regexp.MustCompile(`[,\n]`)
)

// Clean collapses runs of whitespace to single spaces and trims. Input is
// normalized to Unicode NFC first so composed and decomposed forms of the
// same text match the vocabulary identically.
func Clean(s string) string {
	s = norm.NFC.String(s)
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// stripParens removes parenthesis characters while keeping their enclosed
// text. Parenthetical asides ("(Damietta)") carry real clause content.
func stripParens(s string) string {
	return parenRegex.ReplaceAllString(s, " ")
}

// splitClauses splits cleaned text on comma/newline boundaries, trims each
// fragment, and drops empties. Clause order is preserved; the first clause
// matters for the department fallback heuristic.
func splitClauses(s string) []string {
	var clauses []string
	for _, p := range clauseSplit.Split(s, -1) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		clauses = append(clauses, Clean(p))
	}
	return clauses
}
