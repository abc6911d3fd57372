package common

import (
	"strings"
)

// SanitizeFilenamePart turns free text into a token safe for a
// Content-Disposition filename. Runs of anything outside ASCII letters and
// digits collapse into a single underscore.
func SanitizeFilenamePart(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.TrimSpace(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if isAlnum {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			pendingSep = false
		} else {
			pendingSep = true
		}
	}
	return b.String()
}

func TruncateString(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
