package suggest

import (
	"sort"
	"strings"
	"sync"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// Suggestion is one completion result.
type Suggestion struct {
	Word      string
	Frequency float64
}

// Completer shares a single trie between goroutines. Reads run
// concurrently; Add and Remove take the lock exclusively and drop the
// cached completions they affect.
type Completer struct {
	trie     *trie.Trie
	cache    *PrefixCache
	maxLimit int
	mu       sync.RWMutex
}

var _ ICompleter = (*Completer)(nil)

// NewCompleter wraps t. maxLimit caps Complete and is also the depth of
// each cached completion list.
func NewCompleter(t *trie.Trie, cacheSize, maxLimit int) *Completer {
	if t == nil {
		t = trie.New()
	}
	if maxLimit <= 0 {
		maxLimit = trie.MaxPrefixResults
	}
	return &Completer{
		trie:     t,
		cache:    NewPrefixCache(cacheSize),
		maxLimit: maxLimit,
	}
}

// Complete returns up to limit words starting with prefix, most frequent
// first. Input is matched case-insensitively and the caller's upper case
// letters are carried over to the results.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	lowerPrefix := strings.ToLower(prefix)
	if limit <= 0 {
		limit = trie.MaxPrefixResults
	}
	if limit > c.maxLimit {
		limit = c.maxLimit
	}

	c.mu.RLock()
	matches, hit := c.cache.Get(lowerPrefix)
	if !hit {
		matches = c.trie.PrefixSearchN(lowerPrefix, c.maxLimit)
		c.cache.Put(lowerPrefix, matches)
	}
	c.mu.RUnlock()

	if len(matches) > limit {
		matches = matches[:limit]
	}

	capitals := capitalPositions(prefix)
	suggestions := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, Suggestion{
			Word:      ApplyCapitalization(m.Word, capitals),
			Frequency: m.Frequency,
		})
	}
	return suggestions
}

func (c *Completer) Has(word string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, err := c.trie.HasWord(strings.ToLower(word))
	return err
}

// Frequency returns the stored frequency of word.
func (c *Completer) Frequency(word string) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.Frequency(strings.ToLower(word))
}

func (c *Completer) Add(word string, frequency float64) error {
	word = strings.ToLower(word)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.trie.AddWord(word, frequency); err != nil {
		return err
	}
	c.cache.Invalidate(word)
	log.Debugf("Added '%s' (freq %v)", word, frequency)
	return nil
}

func (c *Completer) Remove(word string) error {
	word = strings.ToLower(word)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.trie.RemoveWord(word); err != nil {
		return err
	}
	c.cache.Invalidate(word)
	log.Debugf("Removed '%s'", word)
	return nil
}

func (c *Completer) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.WordCount()
}

func (c *Completer) Words(sorted bool) []string {
	c.mu.RLock()
	words := c.trie.AllWords()
	c.mu.RUnlock()

	if sorted {
		sort.Strings(words)
	}
	return words
}

func (c *Completer) Suffix(suffix string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.SuffixSearch(strings.ToLower(suffix))
}

func (c *Completer) Correct(word string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.Suggest(strings.ToLower(word))
}

func (c *Completer) Stats() map[string]int {
	stats := map[string]int{
		"totalWords": c.Count(),
		"maxLimit":   c.maxLimit,
	}
	for k, v := range c.cache.Stats() {
		stats[k] = v
	}
	return stats
}
