// Package suggest serves one long-lived dictionary to concurrent callers.
// It wraps a trie with a read-write lock and caches prefix completions.
package suggest

// ICompleter defines the interface for the dictionary engines used by the
// CLI and the IPC server.
type ICompleter interface {
	// Complete returns frequency ranked completions for prefix
	Complete(prefix string, limit int) []Suggestion

	// Has fails with trie.ErrNotFound when word is not stored
	Has(word string) error

	// Frequency returns the stored frequency of word
	Frequency(word string) (float64, error)

	// Add stores word with its frequency
	Add(word string, frequency float64) error

	// Remove deletes word, failing with trie.ErrNotFound when absent
	Remove(word string) error

	// Count returns the number of stored words
	Count() int

	// Words lists every stored word, alphabetically when sorted is set
	Words(sorted bool) []string

	// Suffix returns the words ending in suffix
	Suffix(suffix string) []string

	// Correct returns spelling suggestions for word
	Correct(word string) []string

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}
