package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts an exported Go identifier to snake_case. Acronyms stay
// grouped, so "HTTPServer" becomes "http_server" and "UserID" becomes
// "user_id". Validation uses it to report struct field names the way they
// appear on the wire.
func ToLowerSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && boundaryBefore(runes, i) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// boundaryBefore reports whether a word break belongs before runes[i], which
// is known to be upper case. A break happens after a lower-case letter or
// digit, and between an acronym and the word that follows it.
func boundaryBefore(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
		return true
	}
	return false
}
