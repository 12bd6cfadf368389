package docx

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

var (
	percentRegex     = regexp.MustCompile(`\d+%`)
	equalsRegex      = regexp.MustCompile(`\s*=\s*`)
	plusMinusRegex   = regexp.MustCompile(`\s*±\s*`)
	multiSpaceRegex  = regexp.MustCompile(`\s+`)
	lineSpaceRegex   = regexp.MustCompile(`[ \t]+`)
	citeNumberRegex  = regexp.MustCompile(`\[(\d+)\]`)
	etAlRegex        = regexp.MustCompile(`(\S+)(\s+)(et al\b)`)
	bareEtAlRegex    = regexp.MustCompile(`^et al\b`)
	bracketsReplacer = strings.NewReplacer("(", "[", ")", "]")
)

// convertBrackets replaces round brackets with square brackets.
func convertBrackets(text string) string {
	return bracketsReplacer.Replace(text)
}

// decimalPercents rewrites integer percentages in decimal form, so
// "15%" becomes "15.0%" while "12.5%" stays untouched.
func decimalPercents(text string) string {
	matches := percentRegex.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}
	var sb strings.Builder
	last := 0
	for _, m := range matches {
		if m[0] > 0 && text[m[0]-1] == '.' {
			continue
		}
		// m[1]-1 is the % sign
		sb.WriteString(text[last : m[1]-1])
		sb.WriteString(".0%")
		last = m[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// spaceSymbols puts exactly one space on each side of "=" and "±" and
// collapses any runs of whitespace.
func spaceSymbols(text string) string {
	text = equalsRegex.ReplaceAllString(text, " = ")
	text = plusMinusRegex.ReplaceAllString(text, " ± ")
	text = multiSpaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// spaceSymbolsKeepLines applies the symbol spacing rules line by line,
// preserving the newlines table cells rely on.
func spaceSymbolsKeepLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = equalsRegex.ReplaceAllString(line, " = ")
		line = plusMinusRegex.ReplaceAllString(line, " ± ")
		line = lineSpaceRegex.ReplaceAllString(line, " ")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// applyTextRules runs the plain-text manuscript style rules: square
// brackets, decimal percentages, symbol spacing.
func applyTextRules(text string) string {
	return spaceSymbols(decimalPercents(convertBrackets(text)))
}

// addRichText writes body text into a paragraph with the full rule set:
// the plain-text rules, bracketed citation numbers as bold superscript,
// and "et al" with the preceding author name emphasized.
func addRichText(p *etree.Element, text string, size int) {
	text = applyTextRules(text)

	last := 0
	for _, m := range citeNumberRegex.FindAllStringIndex(text, -1) {
		if m[0] > last {
			addEtAlText(p, text[last:m[0]], size)
		}
		addRun(p, text[m[0]:m[1]], runStyle{Font: fontBody, Size: size, Bold: true, Superscript: true})
		last = m[1]
	}
	if last < len(text) {
		addEtAlText(p, text[last:], size)
	}
}

// addEtAlText writes a text segment, bolding the author name before
// each "et al" and setting "et al" itself bold italic.
func addEtAlText(p *etree.Element, text string, size int) {
	plain := runStyle{Font: fontBody, Size: size}

	if bareEtAlRegex.MatchString(text) {
		addRun(p, "et al", runStyle{Font: fontBody, Size: size, Bold: true, Italic: true})
		text = text[len("et al"):]
		if text == "" {
			return
		}
	}

	last := 0
	for _, m := range etAlRegex.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			addRun(p, text[last:m[0]], plain)
		}
		// Author name, whitespace, then the phrase itself.
		addRun(p, text[m[2]:m[3]], runStyle{Font: fontBody, Size: size, Bold: true})
		addRun(p, text[m[4]:m[5]], plain)
		addRun(p, text[m[6]:m[7]], runStyle{Font: fontBody, Size: size, Bold: true, Italic: true})
		last = m[7]
	}
	if last < len(text) {
		addRun(p, text[last:], plain)
	}
}
