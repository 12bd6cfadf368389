package affiliation

import (
	"regexp"
	"strings"
)

var (
	// Role phrasing like "lecturer of X" names a specialty, not a
	// department clause; it takes priority over every other rule.
	roleStartRegex     = regexp.MustCompile(`(?i)^\s*(lecturer|professor|assistant professor|associate professor|resident)\s+of`)
	roleSpecialtyRegex = regexp.MustCompile(`(?i)(?:lecturer|professor|assistant professor|associate professor|resident)\s+of\s+([a-z]+)`)

	misspelledDeptRegex = regexp.MustCompile(`(?i)\bdeparmtent\b`)

	// "department of X <word> faculty" captures only the bare specialty
	// so the following faculty text is not swallowed into the name.
	deptOfFacultyRegex = regexp.MustCompile(`(?i)(?:department|dept)\s+of\s+([a-z]+)(?:\s+[a-z]+\s+faculty)`)
	deptOfRegex        = regexp.MustCompile(`(?i)(?:department|dept)\s+of\s+([a-z &]+)`)
	beforeDeptRegex    = regexp.MustCompile(`(?i)([a-z &]+)\s+(?:department|dept)`)
	headingFacultyRegex = regexp.MustCompile(`(?i)^([a-z ]+?)\s+(?:facality|faculty|faclty)`)
	centerDeptRegex     = regexp.MustCompile(`(?i)^(?:[\w\s]+\s+)?([a-z]+(?:ology)?)\s+center`)

	articleWordRegex = regexp.MustCompile(`(?i)\b(Of|The)\b`)
)

// Heading-rule candidates that are role titles, not departments.
var roleTitles = map[string]bool{
	"lecturer":            true,
	"professor":           true,
	"assistant professor": true,
	"associate professor": true,
}

// departmentRule is one step of the extraction cascade. Rules are tried
// in order and the first non-empty result wins, so the unambiguous
// patterns must precede the heuristic ones.
type departmentRule struct {
	name    string
	extract func(text string) string
}

var departmentRules = []departmentRule{
	{
		name: "department-of-with-faculty",
		extract: func(text string) string {
			if m := deptOfFacultyRegex.FindStringSubmatch(text); m != nil {
				return titleWords(m[1])
			}
			return ""
		},
	},
	{
		name: "department-of-phrase",
		extract: func(text string) string {
			if m := deptOfRegex.FindStringSubmatch(text); m != nil {
				return titleWords(m[1])
			}
			return ""
		},
	},
	{
		name: "phrase-before-department",
		extract: func(text string) string {
			m := beforeDeptRegex.FindStringSubmatch(text)
			if m == nil {
				return ""
			}
			captured := titleWords(m[1])
			captured = strings.TrimSpace(strings.ReplaceAll(captured, "Depridement", ""))
			return captured
		},
	},
	{
		name: "heading-before-faculty",
		extract: func(text string) string {
			m := headingFacultyRegex.FindStringSubmatch(text)
			if m == nil {
				return ""
			}
			candidate := titleWords(strings.TrimSpace(m[1]))
			if roleTitles[strings.ToLower(candidate)] {
				return ""
			}
			candidate = strings.ReplaceAll(candidate, "Depridement", "Surgery")
			candidate = strings.ReplaceAll(candidate, "Surgary", "Surgery")
			candidate = Clean(articleWordRegex.ReplaceAllString(candidate, ""))
			// Length guard against over-capture by the heading pattern.
			if candidate == "" || len(strings.Fields(candidate)) > 3 {
				return ""
			}
			return candidate
		},
	},
	{
		name: "specialty-before-center",
		extract: func(text string) string {
			if m := centerDeptRegex.FindStringSubmatch(text); m != nil {
				return titleWords(strings.TrimSpace(m[1]))
			}
			return ""
		},
	},
}

// extractDepartment scans the whole cleaned text rather than the clause
// list because department phrasing often spans a clause boundary
// ("Department of X, Y Faculty").
func extractDepartment(text string) string {
	if roleStartRegex.MatchString(text) {
		if m := roleSpecialtyRegex.FindStringSubmatch(text); m != nil {
			return titleWords(m[1])
		}
		// Role phrasing never also carries an extractable department.
		return ""
	}

	text = misspelledDeptRegex.ReplaceAllString(text, "department")

	for _, rule := range departmentRules {
		if dept := rule.extract(text); dept != "" {
			return dept
		}
	}
	return ""
}
