package manuscript

import (
	"strings"
)

// Words kept lowercase inside formatted titles.
var titleStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"nor": true, "but": true, "for": true, "so": true, "yet": true,
	"as": true, "at": true, "by": true, "in": true, "of": true,
	"on": true, "to": true, "up": true, "via": true, "with": true,
	"without": true, "from": true, "between": true, "among": true,
	"over": true, "under": true, "after": true, "before": true,
	"during": true, "into": true, "onto": true, "per": true,
	"versus": true, "vs": true, "than": true, "like": true, "near": true,
}

// FormatTitle title-cases a manuscript title. Commas keep their clause
// structure, periods are dropped, stopwords stay lowercase.
func FormatTitle(title string) string {
	parts := strings.Split(title, ",")
	formatted := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(strings.ReplaceAll(part, ".", ""))
		words := strings.Fields(part)
		cased := make([]string, 0, len(words))
		for _, word := range words {
			if titleStopwords[strings.ToLower(word)] {
				cased = append(cased, strings.ToLower(word))
			} else {
				cased = append(cased, capitalizeWord(word))
			}
		}
		formatted = append(formatted, strings.Join(cased, " "))
	}
	return strings.Join(formatted, ", ")
}

func capitalizeWord(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

// FormatKeywords normalizes a keyword list to "K1; K2; K3;" with each
// keyword capitalized. Commas are accepted as separators.
func FormatKeywords(keywords string) string {
	keywords = strings.ReplaceAll(keywords, ",", "; ")
	keywords = strings.Join(strings.Fields(keywords), " ")
	if keywords == "" {
		return ";"
	}

	parts := strings.Split(keywords, "; ")
	formatted := make([]string, 0, len(parts))
	for _, kw := range parts {
		words := strings.Fields(kw)
		for i, w := range words {
			words[i] = capitalizeWord(w)
		}
		formatted = append(formatted, strings.Join(words, " "))
	}
	return strings.ReplaceAll(strings.Join(formatted, "; "), ".", "") + ";"
}

// FormatResearchType renders the subject banner line.
func FormatResearchType(researchType string) string {
	return "Main Subject: [" + researchType + "]"
}

// FormatCitation assembles the article-in-press citation line from the
// formatted title and the short author names.
func FormatCitation(title string, shortAuthors []string, year string) string {
	citation := strings.Join(shortAuthors, ", ")
	if citation != "" {
		citation += ". "
	}
	return citation + title + ". IJMA " + year + "; XX-XX [Article in Press]."
}

// AbstractSection is one labeled abstract paragraph.
type AbstractSection struct {
	// Label includes the trailing colon, e.g. "Background:".
	Label   string
	Content string
}

// SplitAbstract breaks a structured abstract into labeled sections, one
// per non-empty line, splitting each at its first colon. A line without
// a colon becomes a bare label.
func SplitAbstract(abstract string) []AbstractSection {
	abstract = strings.ReplaceAll(abstract, "\t", "")
	var sections []AbstractSection
	for _, line := range strings.Split(abstract, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if idx := strings.Index(line, ":"); idx >= 0 {
			sections = append(sections, AbstractSection{
				Label:   line[:idx+1],
				Content: strings.TrimSpace(line[idx+1:]),
			})
		} else {
			sections = append(sections, AbstractSection{Label: line})
		}
	}
	return sections
}

// JoinParagraphs cleans a body section into blank-line separated
// paragraphs.
func JoinParagraphs(content string) string {
	var paragraphs []string
	for _, p := range strings.Split(content, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

// ShortAuthors maps author names to their running-header short form.
func ShortAuthors(names []string) []string {
	short := make([]string, len(names))
	for i, name := range names {
		short[i] = ShortName(name)
	}
	return short
}
