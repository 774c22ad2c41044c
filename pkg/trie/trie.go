// Package trie is the dictionary engine: a character trie with exact lookup,
// insertion, pruning deletion, frequency-ranked prefix completion, suffix
// matching and single-substitution spelling suggestions.
//
// A Trie is not safe for concurrent mutation. Callers that share one
// instance across goroutines guard it themselves (see pkg/suggest).
package trie

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Entry is a word with its frequency, as read from a dictionary listing.
type Entry struct {
	Word      string
	Frequency float64
}

// Trie owns a tree of Nodes. The zero value is an empty trie.
type Trie struct {
	root *Node
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{}
}

// FromEntries bulk loads entries in order.
func FromEntries(entries []Entry) (*Trie, error) {
	t := New()
	for _, e := range entries {
		if err := t.AddWord(e.Word, e.Frequency); err != nil {
			return nil, fmt.Errorf("adding %q: %w", e.Word, err)
		}
	}
	return t, nil
}

// FromLines bulk loads "<word> <frequency>" lines in order. Malformed lines
// fail the whole load with a *FormatError.
func FromLines(lines []string) (*Trie, error) {
	t := New()
	for i, line := range lines {
		e, err := ParseEntry(line)
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Line = i + 1
			}
			return nil, err
		}
		if err := t.AddWord(e.Word, e.Frequency); err != nil {
			return nil, &FormatError{Line: i + 1, Text: line, Reason: err.Error()}
		}
	}
	return t, nil
}

// ParseEntry parses one "<word> <frequency>" line.
func ParseEntry(line string) (Entry, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Entry{}, &FormatError{Text: line, Reason: fmt.Sprintf("expected 2 fields, got %d", len(fields))}
	}
	freq, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Entry{}, &FormatError{Text: line, Reason: "unparseable frequency"}
	}
	if freq < 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return Entry{}, &FormatError{Text: line, Reason: "frequency out of range"}
	}
	return Entry{Word: fields[0], Frequency: freq}, nil
}

// Add stores word with frequency 1.
func (t *Trie) Add(word string) error {
	return t.AddWord(word, 1)
}

// AddWord stores word, creating the missing nodes along its path.
// Adding an existing word overwrites its frequency. Words must be valid
// UTF-8 and frequencies finite and non-negative.
func (t *Trie) AddWord(word string, frequency float64) error {
	if word == "" || !utf8.ValidString(word) {
		return ErrInvalidWord
	}
	if frequency < 0 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, frequency)
	}
	if t.root == nil {
		t.root = newNode(0)
	}

	n := t.root
	for _, r := range word {
		n = n.addChild(r)
	}
	n.terminal = true
	n.frequency = frequency
	return nil
}

// RemoveWord unmarks word and prunes every node left without children
// and without a terminal marker.
func (t *Trie) RemoveWord(word string) error {
	if t.root == nil || word == "" {
		return notFound(word)
	}
	_, err := remove(t.root, []rune(word), 0)
	return err
}

// remove reports whether n should be detached from its parent.
func remove(n *Node, word []rune, i int) (bool, error) {
	if i == len(word) {
		if !n.terminal {
			return false, fmt.Errorf("%w: %q is only a prefix of stored words", ErrNotFound, string(word))
		}
		n.terminal = false
		n.frequency = 0
		return n.isLeaf(), nil
	}

	next := n.child(word[i])
	if next == nil {
		return false, notFound(string(word))
	}
	prune, err := remove(next, word, i+1)
	if err != nil {
		return false, err
	}
	if prune {
		n.detach(word[i])
	}
	return !n.terminal && n.isLeaf(), nil
}

// HasWord reports true when word is stored, otherwise it fails with
// ErrNotFound.
func (t *Trie) HasWord(word string) (bool, error) {
	n := t.find(word)
	if n == nil || !n.terminal {
		return false, notFound(word)
	}
	return true, nil
}

// Frequency returns the stored frequency of word.
func (t *Trie) Frequency(word string) (float64, error) {
	n := t.find(word)
	if n == nil || !n.terminal {
		return 0, notFound(word)
	}
	return n.frequency, nil
}

// find walks s from the root and returns the node of its last character.
func (t *Trie) find(s string) *Node {
	if t.root == nil || s == "" {
		return nil
	}
	n := t.root
	for _, r := range s {
		if n = n.child(r); n == nil {
			return nil
		}
	}
	return n
}

// WordCount returns the number of stored words.
func (t *Trie) WordCount() int {
	if t.root == nil {
		return 0
	}
	return count(t.root)
}

func count(n *Node) int {
	c := 0
	if n.terminal {
		c++
	}
	for _, child := range n.children {
		c += count(child)
	}
	return c
}

// AllWords returns every stored word in depth-first, insertion order.
// The result is not sorted.
func (t *Trie) AllWords() []string {
	words := []string{}
	if t.root == nil {
		return words
	}
	buf := make([]rune, 0, 32)
	for _, child := range t.root.children {
		collect(child, buf, func(word []rune, _ *Node) {
			words = append(words, string(word))
		})
	}
	return words
}

// collect visits every terminal at or below n in pre-order. path holds the
// characters leading to n, excluding n itself.
func collect(n *Node, path []rune, visit func(word []rune, n *Node)) {
	path = append(path, n.char)
	if n.terminal {
		visit(path, n)
	}
	for _, child := range n.children {
		collect(child, path, visit)
	}
}

// Root exposes the root node for read-only inspection; nil when empty.
func (t *Trie) Root() *Node {
	return t.root
}
