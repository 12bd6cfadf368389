package affiliation

import (
	"regexp"
	"strings"
)

var newPrefixRegex = regexp.MustCompile(`(?i)^new\s+`)

// extractCity finds the city clause, respecting the used set built from
// already-claimed text. Priority: whole-clause table hit, multi-word
// city as clause prefix (longest name first), token-window scan, then a
// best-effort fallback to the first unclaimed non-country clause. The
// fallback cannot confirm its pick is actually a city; callers treat the
// field as provisional text.
func extractCity(v *Vocabulary, clauses []string, used map[string]bool) string {
	for _, clause := range clauses {
		lower := strings.ToLower(clause)

		if _, isCity := v.CityToCountry[lower]; isCity && !used[clause] {
			if corrected, ok := v.CityCorrections[lower]; ok {
				return corrected
			}
			return titleWords(clause)
		}

		for _, city := range v.multiWordCities {
			if strings.HasPrefix(lower, city) {
				if corrected, ok := v.CityCorrections[city]; ok {
					return corrected
				}
				return titleWords(city)
			}
		}

		words := strings.Fields(clause)
		for i := range words {
			for _, city := range v.multiWordCities {
				cityWords := strings.Fields(city)
				if i+len(cityWords) > len(words) {
					continue
				}
				candidate := strings.ToLower(strings.Join(words[i:i+len(cityWords)], " "))
				if candidate != city {
					continue
				}
				if corrected, ok := v.CityCorrections[city]; ok {
					return corrected
				}
				return titleWords(city)
			}

			wl := strings.ToLower(words[i])
			if _, isCity := v.CityToCountry[wl]; isCity && !used[words[i]] {
				if corrected, ok := v.CityCorrections[wl]; ok {
					return corrected
				}
				return titleWords(words[i])
			}
		}
	}

	// Fallback: first unclaimed clause that is not a country name.
	for _, clause := range clauses {
		if used[clause] {
			continue
		}
		lower := strings.ToLower(clause)
		if _, isCountry := v.Countries[lower]; isCountry {
			continue
		}
		stripped := newPrefixRegex.ReplaceAllString(lower, "")
		if corrected, ok := v.CityCorrections[lower]; ok {
			return corrected
		}
		if corrected, ok := v.CityCorrections[stripped]; ok {
			return corrected
		}
		if _, isCity := v.CityToCountry[stripped]; isCity {
			return newPrefixRegex.ReplaceAllString(titleWords(clause), "")
		}
		return titleWords(clause)
	}
	return ""
}
