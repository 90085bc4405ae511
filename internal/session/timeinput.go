package session

import (
	"regexp"
	"strings"
)

var timeInputPattern = regexp.MustCompile(`^\d{0,2}:?\d{0,2}$`)

// FormatTimeInput shapes raw keystrokes toward MM:SS: strips everything but
// digits and the colon, inserts the colon after two digits, and caps the
// result at five characters. A shrinking input (backspace) passes through so
// the user can delete the colon.
func FormatTimeInput(value string) string {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == ':' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	if len(cleaned) < len(value) {
		return cleaned
	}
	if len(cleaned) == 2 && !strings.Contains(cleaned, ":") {
		return cleaned + ":"
	}
	if len(cleaned) > 2 && !strings.Contains(cleaned, ":") {
		cleaned = cleaned[:2] + ":" + cleaned[2:]
	}
	if len(cleaned) > 5 {
		cleaned = cleaned[:5]
	}
	return cleaned
}

// ValidTimeInput accepts complete and partially typed MM:SS values.
func ValidTimeInput(value string) bool {
	return timeInputPattern.MatchString(value)
}
