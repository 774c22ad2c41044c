package trie

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by HasWord and RemoveWord when the word is
	// not stored. It also covers removal of a path that only exists as
	// the prefix of other words.
	ErrNotFound = errors.New("word not found")

	// ErrInvalidWord rejects the empty word, which the root can never hold.
	ErrInvalidWord = errors.New("invalid word")

	// ErrInvalidFrequency rejects negative or NaN frequencies.
	ErrInvalidFrequency = errors.New("invalid frequency")
)

// FormatError describes a malformed line in a word/frequency listing.
// Line is 1-based; zero means the position is unknown.
type FormatError struct {
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

func notFound(word string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, word)
}
