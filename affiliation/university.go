package affiliation

import "strings"

// extractCountry matches a whole clause against the country table. The
// current corpus carries a single country but the table is extensible
// through the vocabulary file.
func extractCountry(v *Vocabulary, clauses []string) string {
	for _, clause := range clauses {
		if country, ok := v.Countries[strings.ToLower(clause)]; ok {
			return country
		}
	}
	return ""
}

// extractUniversity resolves the institution clause. Per clause, in
// order: exact alias, alias substring, a center/centre clause taken
// verbatim, then a "univ" word span that stops before city names and
// faculty keywords.
func extractUniversity(v *Vocabulary, clauses []string) string {
	for _, clause := range clauses {
		lower := strings.ToLower(clause)

		if full, ok := v.UnivAliases[lower]; ok {
			return full
		}
		for _, alias := range v.aliasKeys {
			if strings.Contains(lower, alias) {
				return v.UnivAliases[alias]
			}
		}

		if strings.Contains(lower, "center") || strings.Contains(lower, "centre") {
			return titleWords(clause)
		}

		if strings.Contains(lower, "univ") {
			var univWords []string
			for _, w := range strings.Fields(clause) {
				wl := strings.ToLower(w)
				if _, isCity := v.CityToCountry[wl]; isCity {
					break
				}
				// Stop before "Faculty of X University" style tails.
				if isFacultyWord(wl) {
					break
				}
				univWords = append(univWords, w)
			}
			if len(univWords) > 0 {
				result := titleWords(strings.Join(univWords, " "))
				if !strings.Contains(result, "University") {
					result = strings.ReplaceAll(result, "Univ", "University")
				}
				return result
			}
		}
	}
	return ""
}

// rescanUniversity is a second chance for university mentions embedded
// without clause separation: it splits clauses into tokens, finds one
// containing "univ" or matching an alias, and re-runs the clause-level
// extractor on the word span up to and including that token.
func rescanUniversity(v *Vocabulary, clauses []string) string {
	for _, clause := range clauses {
		tokens := strings.Fields(clause)
		for _, token := range tokens {
			tl := strings.ToLower(token)
			if _, isAlias := v.UnivAliases[tl]; !isAlias && !strings.Contains(tl, "univ") {
				continue
			}
			var span []string
			for _, t := range tokens {
				span = append(span, t)
				if strings.Contains(strings.ToLower(t), "univ") {
					break
				}
			}
			if u := extractUniversity(v, []string{strings.Join(span, " ")}); u != "" {
				return u
			}
		}
	}
	return ""
}
