// Package affiliation normalizes free-text academic affiliation strings
// into a canonical five-field sentence (department, faculty, university,
// city, country). It is a closed-vocabulary rule engine: extraction is
// driven by ordered pattern cascades and static lookup tables, and every
// extractor returns an empty string rather than an error when it cannot
// find its field.
package affiliation

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed vocab.yaml
var embeddedVocab []byte

// Vocabulary holds the lookup tables the engine matches against.
// All keys are lowercase. A Vocabulary is immutable once built and is
// safe to share across concurrent Normalize calls.
type Vocabulary struct {
	Countries       map[string]string `yaml:"countries"`
	CityToCountry   map[string]string `yaml:"city_to_country"`
	CityCorrections map[string]string `yaml:"city_corrections"`
	DeptToFaculty   map[string]string `yaml:"department_to_faculty"`
	UnivAliases     map[string]string `yaml:"university_aliases"`

	// Derived views, built once by finalize.

	// multiWordCities holds city keys containing spaces, longest
	// (by word count) first, so specific names win over generic ones.
	multiWordCities []string

	// cityKeys holds every city key in deterministic order.
	cityKeys []string

	// aliasKeys holds university alias keys, longest first, for
	// substring matching inside a clause.
	aliasKeys []string

	// deptKeys holds department-to-faculty keys in deterministic order.
	deptKeys []string
}

var (
	defaultVocab     *Vocabulary
	defaultVocabOnce sync.Once
)

// DefaultVocabulary returns the compiled-in vocabulary. It is loaded once
// and shared for the process lifetime.
func DefaultVocabulary() *Vocabulary {
	defaultVocabOnce.Do(func() {
		v, err := parseVocabulary(embeddedVocab)
		if err != nil {
			// The embedded vocabulary is validated by tests; a parse
			// failure here means a broken build, not bad user input.
			panic(fmt.Sprintf("affiliation: embedded vocabulary: %v", err))
		}
		defaultVocab = v
	})
	return defaultVocab
}

// LoadVocabulary reads a vocabulary from a YAML file, allowing the
// closed vocabulary to be extended without a code change.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary file: %w", err)
	}
	v, err := parseVocabulary(data)
	if err != nil {
		return nil, fmt.Errorf("parsing vocabulary %s: %w", path, err)
	}
	return v, nil
}

func parseVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing vocabulary YAML: %w", err)
	}
	v.finalize()
	return &v, nil
}

// finalize lowercases all table keys and builds the derived views.
func (v *Vocabulary) finalize() {
	v.Countries = lowerKeys(v.Countries)
	v.CityToCountry = lowerKeys(v.CityToCountry)
	v.CityCorrections = lowerKeys(v.CityCorrections)
	v.DeptToFaculty = lowerKeys(v.DeptToFaculty)
	v.UnivAliases = lowerKeys(v.UnivAliases)

	v.cityKeys = sortedKeys(v.CityToCountry)
	for _, city := range v.cityKeys {
		if strings.Contains(city, " ") {
			v.multiWordCities = append(v.multiWordCities, city)
		}
	}
	// Longest city name first, so e.g. a three-word name is tried
	// before any two-word name starting with the same token.
	sort.SliceStable(v.multiWordCities, func(i, j int) bool {
		return len(strings.Fields(v.multiWordCities[i])) > len(strings.Fields(v.multiWordCities[j]))
	})

	v.aliasKeys = sortedKeys(v.UnivAliases)
	sort.SliceStable(v.aliasKeys, func(i, j int) bool {
		return len(v.aliasKeys[i]) > len(v.aliasKeys[j])
	})

	v.deptKeys = sortedKeys(v.DeptToFaculty)
}

func lowerKeys(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = val
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// isMultiWordCityStart reports whether the token at position i in words
// begins a known multi-word city name. A bare first token with any
// following word is treated as a start, which deliberately over-matches
// (e.g. "new" before an unknown word) to keep city fragments out of
// faculty names.
func (v *Vocabulary) isMultiWordCityStart(words []string, i int) bool {
	for _, city := range v.multiWordCities {
		cityWords := strings.Fields(city)
		if i+len(cityWords) <= len(words) {
			candidate := strings.ToLower(strings.Join(words[i:i+len(cityWords)], " "))
			if candidate == city {
				return true
			}
		}
		if strings.ToLower(words[i]) == cityWords[0] && i+1 < len(words) {
			return true
		}
	}
	return false
}
