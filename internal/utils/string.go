package utils

import (
	"unicode"
)

// IsSeparator checks if a rune may appear inside a dictionary word
// without being a letter
func IsSeparator(r rune) bool {
	return r == '-' || r == '\''
}

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ContainsSpecialChars checks if a string contains anything but letters,
// digits and word separators
func ContainsSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !IsSeparator(r) {
			return true
		}
	}
	return false
}

// IsRepetitive checks for a single character repeated 3+ times ("aaa")
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}
	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}

// IsValidInput checks if input is worth querying the dictionary with.
// Empty strings, pure numbers, special characters and repeated single
// characters are rejected.
func IsValidInput(s string) bool {
	if len(s) == 0 {
		return false
	}
	if IsOnlyNumbers(s) {
		return false
	}
	if ContainsSpecialChars(s) {
		return false
	}
	return !IsRepetitive(s)
}

// IsValidWord checks that s is a single token, suitable for storing
func IsValidWord(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
