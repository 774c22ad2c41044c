package suggest

import (
	"math"
	"sync"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// PrefixCache keeps recent prefix completions in a patricia trie keyed by
// the prefix, so that a changed word can drop exactly the cached prefixes
// it belongs to. Least recently used prefixes are evicted first.
type PrefixCache struct {
	entries     *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	hits        int
	misses      int
	maxEntries  int
	mu          sync.Mutex
}

// NewPrefixCache creates a cache holding up to maxEntries prefixes.
// A non-positive size disables caching.
func NewPrefixCache(maxEntries int) *PrefixCache {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &PrefixCache{
		entries:    patricia.NewTrie(),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the cached matches for prefix.
func (pc *PrefixCache) Get(prefix string) ([]trie.Match, bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	item := pc.entries.Get(patricia.Prefix(prefix))
	if item == nil {
		pc.misses++
		return nil, false
	}
	pc.hits++
	pc.markAccessed(prefix)
	return item.([]trie.Match), true
}

// Put stores the matches for prefix, evicting the oldest entry when full.
func (pc *PrefixCache) Put(prefix string, matches []trie.Match) {
	if pc.maxEntries == 0 || prefix == "" {
		return
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()

	if _, exists := pc.accessTime[prefix]; !exists && len(pc.accessTime) >= pc.maxEntries {
		pc.evictLRU()
	}
	pc.entries.Set(patricia.Prefix(prefix), matches)
	pc.markAccessed(prefix)
}

// Invalidate drops every cached prefix of word, word included, and
// returns how many entries went away.
func (pc *PrefixCache) Invalidate(word string) int {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	var stale []patricia.Prefix
	err := pc.entries.VisitPrefixes(patricia.Prefix(word), func(p patricia.Prefix, _ patricia.Item) error {
		stale = append(stale, p)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting cached prefixes of %q: %v", word, err)
	}

	for _, p := range stale {
		pc.entries.Delete(p)
		delete(pc.accessTime, string(p))
	}
	if len(stale) > 0 {
		log.Debugf("Invalidated %d cached prefixes of '%s'", len(stale), word)
	}
	return len(stale)
}

// Clear empties the cache.
func (pc *PrefixCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.entries = patricia.NewTrie()
	pc.accessTime = make(map[string]int64, pc.maxEntries)
}

// Len returns the number of cached prefixes.
func (pc *PrefixCache) Len() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return len(pc.accessTime)
}

func (pc *PrefixCache) Stats() map[string]int {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	return map[string]int{
		"cachedPrefixes": len(pc.accessTime),
		"maxCached":      pc.maxEntries,
		"cacheHits":      pc.hits,
		"cacheMisses":    pc.misses,
	}
}

func (pc *PrefixCache) markAccessed(prefix string) {
	pc.accessCount++
	pc.accessTime[prefix] = pc.accessCount
}

func (pc *PrefixCache) evictLRU() {
	var oldest string
	var oldestTime int64 = math.MaxInt64

	for prefix, accessTime := range pc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldest = prefix
		}
	}

	if oldest != "" {
		pc.entries.Delete(patricia.Prefix(oldest))
		delete(pc.accessTime, oldest)
		log.Debugf("Evicted prefix '%s' from cache", oldest)
	}
}
