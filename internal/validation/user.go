// Package validation provides pure input checks for user records.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// Validation errors.
var (
	ErrMissingFields = errors.New("name and email are required")
	ErrInvalidName   = errors.New("name must be a non-empty string")
	ErrInvalidEmail  = errors.New("email is not a valid address")
)

// emailPattern accepts local@domain.tld: one '@', no whitespace, and a '.'
// after the '@' with characters on both sides. RE2's \s is ASCII only, so
// vertical tab, Unicode separators and the BOM are listed explicitly.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// isSpace reports whether r is trimmed from names.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// ValidateName checks that v is a string with non-whitespace content and
// returns it trimmed.
func ValidateName(v any) (string, error) {
	name, ok := v.(string)
	if !ok {
		return "", ErrInvalidName
	}

	trimmed := strings.TrimFunc(name, isSpace)
	if len(trimmed) == 0 {
		return "", ErrInvalidName
	}

	return trimmed, nil
}

// ValidateEmail checks that v is a string shaped like an email address.
// The returned value is not normalized; see NormalizeEmail.
func ValidateEmail(v any) (string, error) {
	email, ok := v.(string)
	if !ok || !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NormalizeEmail returns the stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}
