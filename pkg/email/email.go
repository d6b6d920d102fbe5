// Package email holds small helpers for working with notification addresses.
package email

import (
	"strings"
	"unicode"
)

// GreetingName derives a display name from the local part of an address;
// "jane.smith@x.org" greets "Jane". Falls back to "there" when nothing
// name-like can be extracted.
func GreetingName(email string) string {
	localPart := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "there"
	}

	runes := []rune(parts[0])
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
