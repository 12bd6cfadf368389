package affiliation

import (
	"regexp"
	"strings"
)

// Faculty keywords. The misspellings are real corpus variants and must
// match during extraction; they are corrected in the output.
var (
	facultyKeywords     = []string{"faculty", "college", "school"}
	facultyMisspellings = []string{"facality", "faclty"}

	facultyOfRegex = regexp.MustCompile(`(?i)((?:faculty|facality|faclty)\s+of\s+[a-z]+)(?:\s|$)`)
)

// Particles that open multi-word city names; stripped from the tail of a
// faculty phrase along with plain city names.
var cityPrefixParticles = map[string]bool{
	"new": true, "old": true, "el": true, "al": true, "sheikh": true,
}

func hasFacultyKeyword(lower string) bool {
	for _, w := range facultyKeywords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	for _, w := range facultyMisspellings {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// isFacultyWord reports an exact keyword match, used as a stop token when
// scanning word spans.
func isFacultyWord(lower string) bool {
	for _, w := range facultyKeywords {
		if lower == w {
			return true
		}
	}
	return false
}

func fixFacultySpelling(s string) string {
	s = strings.ReplaceAll(s, "Facality", "Faculty")
	return strings.ReplaceAll(s, "Faclty", "Faculty")
}

// extractFaculty scans clauses for a faculty keyword. The tight
// "faculty of WORD" pattern is most reliable and tried first; the
// fallback accumulates words until it runs into a city name or a
// university token, then strips stray city words off the tail while at
// least the "Faculty Of" skeleton remains.
func extractFaculty(v *Vocabulary, clauses []string) string {
	for _, clause := range clauses {
		lower := strings.ToLower(clause)
		if !hasFacultyKeyword(lower) {
			continue
		}

		if m := facultyOfRegex.FindStringSubmatch(clause); m != nil {
			return strings.TrimSpace(fixFacultySpelling(titleWords(m[1])))
		}

		words := strings.Fields(clause)
		var facultyWords []string
		for i := 0; i < len(words); i++ {
			wl := strings.ToLower(words[i])
			if v.isMultiWordCityStart(words, i) {
				break
			}
			if _, isCity := v.CityToCountry[wl]; isCity {
				break
			}
			if strings.Contains(wl, "univ") {
				break
			}
			facultyWords = append(facultyWords, words[i])
		}
		if len(facultyWords) == 0 {
			continue
		}

		result := fixFacultySpelling(titleWords(strings.Join(facultyWords, " ")))
		resultWords := strings.Fields(result)
		for len(resultWords) > 2 {
			last := strings.ToLower(resultWords[len(resultWords)-1])
			_, isCity := v.CityToCountry[last]
			if !isCity && !cityPrefixParticles[last] {
				break
			}
			resultWords = resultWords[:len(resultWords)-1]
		}
		return strings.Join(resultWords, " ")
	}
	return ""
}
