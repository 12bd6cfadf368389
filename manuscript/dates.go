package manuscript

import (
	"regexp"
	"strings"
)

var (
	// Trailing clock time on scraped dates: "24-08-2025 13:45:02".
	timestampSuffixRegex = regexp.MustCompile(`\s+\d{1,2}:\d{2}(:\d{2})?$`)

	dayFirstDateRegex = regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`)
)

// StripTimestamp removes a trailing clock time from a scraped date cell.
func StripTimestamp(s string) string {
	return strings.TrimSpace(timestampSuffixRegex.ReplaceAllString(strings.TrimSpace(s), ""))
}

// FlipDate reverses the dash-separated segments of a date, turning
// day-month-year into year-month-day and back. Inputs that are not
// dash-separated are returned unchanged apart from trimming.
func FlipDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" || !strings.Contains(date, "-") {
		return date
	}
	parts := strings.Split(date, "-")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "-")
}

// IsDayFirstDate reports whether a string looks like a dd-mm-yyyy date.
func IsDayFirstDate(s string) bool {
	return dayFirstDateRegex.MatchString(strings.TrimSpace(s))
}
