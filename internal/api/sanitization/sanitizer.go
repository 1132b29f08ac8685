package sanitization

import (
	"regexp"
	"strings"
	"unicode"
)

var multiSpaceRegex = regexp.MustCompile(`[ \t]+`)

// stripControl removes control characters from a string. Newlines and tabs
// survive so multi-line messages keep their shape.
func stripControl(input string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
}

// SanitizeString normalizes a submitted free-text value. HTML escaping is
// not done here; the mail templates escape at render time.
func SanitizeString(input string) string {
	safe := stripControl(input)
	safe = multiSpaceRegex.ReplaceAllString(safe, " ")
	return strings.TrimSpace(safe)
}

// SanitizeEmail normalizes an email address
func SanitizeEmail(input string) string {
	email := strings.ToLower(input)
	email = strings.TrimSpace(email)
	return stripControl(email)
}

// SanitizeName normalizes a personal name. Names also end up in mail
// headers, so header-breaking characters are dropped entirely.
func SanitizeName(input string) string {
	safe := stripControl(input)
	safe = strings.NewReplacer("\r", "", "\n", "", "\t", " ").Replace(safe)
	safe = multiSpaceRegex.ReplaceAllString(safe, " ")
	return strings.TrimSpace(safe)
}
