package validation

import "regexp"

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

var specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

// HasSpecialChar checks if a string contains at least one special character
func HasSpecialChar(s string) bool {
	return specialChars.MatchString(s)
}

// ValidPassword reports whether a password satisfies the length and
// character-class policy.
func ValidPassword(s string) bool {
	return len(s) >= MinPasswordLength && HasSpecialChar(s)
}
