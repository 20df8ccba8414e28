package utils

import (
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)

// NormalizePhoneNumber strips formatting from a guest phone number before it
// is snapshotted onto a booking. A leading + is preserved.
func NormalizePhoneNumber(phoneNumber string) string {
	trimmed := strings.TrimSpace(phoneNumber)
	plus := strings.HasPrefix(trimmed, "+")
	digits := nonDigit.ReplaceAllString(trimmed, "")
	if digits == "" {
		return ""
	}
	if plus {
		return "+" + digits
	}
	return digits
}
