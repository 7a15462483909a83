package validators

import (
	"strings"
	"unicode"
)

// NormalizePhone keeps digits only so "+55 (11) 98888-7777" and
// "5511988887777" identify the same client. It returns "" when the result
// cannot be a Brazilian phone number with or without country code.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < 10 || len(digits) > 13 {
		return ""
	}
	return digits
}
