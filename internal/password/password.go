package password

import (
	"unicode"
	"unicode/utf8"
)

// MinLength is the minimum number of characters of a strong password.
const MinLength = 8

// IsStrong reports whether s has at least MinLength characters and contains an
// upper-case letter, a lower-case letter and a digit.
func IsStrong(s string) bool {
	if utf8.RuneCountInString(s) < MinLength {
		return false
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
