package helper

import "strings"

// DangerousFragments are rejected wherever they appear in a query, including
// inside comments and string literals. This is a substring check, not a parser.
var DangerousFragments = []string{
	"DROP DATABASE",
	"DELETE FROM",
	"TRUNCATE",
}

// IsDangerous reports whether the trimmed, upper-cased query contains any of
// the DangerousFragments.
func IsDangerous(query string) bool {
	upper := strings.ToUpper(strings.TrimSpace(query))
	for _, fragment := range DangerousFragments {
		if strings.Contains(upper, fragment) {
			return true
		}
	}
	return false
}

const limitHint = "The LIMIT clause requires a number. Example: LIMIT 10 or LIMIT 100"

// ErrorHint returns a best-effort hint for an error message, or "" when none
// applies.
func ErrorHint(message string) string {
	if strings.Contains(strings.ToLower(message), "limit") {
		return limitHint
	}
	return ""
}
