package auth

import (
	"strings"
	"unicode/utf16"
)

// Password policy limits. MaxPasswordBytes is the bcrypt input limit.
const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
)

// PasswordSymbols is the punctuation set that satisfies the symbol rule.
const PasswordSymbols = "!@#$%^&*_-"

// ValidatePassword reports whether password is strong enough for signup: at
// least MinPasswordLength characters with a lowercase letter, an uppercase
// letter, a digit and one of PasswordSymbols. Letters and digits are ASCII
// only. Line breaks are not allowed. Length is counted in UTF-16 code units,
// so a character outside the Basic Multilingual Plane counts twice.
func ValidatePassword(password string) bool {
	if utf16Len(password) < MinPasswordLength || len(password) > MaxPasswordBytes {
		return false
	}
	if strings.ContainsAny(password, "\n\r\u2028\u2029") {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}

	return lower && upper && digit && symbol
}

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
