package suggest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func newTestCompleter(t testing.TB, cacheSize int) *Completer {
	t.Helper()
	tr, err := dictionary.Load("../../testdata/tiny_frequency.txt")
	require.NoError(t, err)
	return NewCompleter(tr, cacheSize, 64)
}

func TestComplete(t *testing.T) {
	c := newTestCompleter(t, 16)

	got := c.Complete("ba", 3)
	assert.Equal(t, []Suggestion{
		{Word: "back", Frequency: 740270},
		{Word: "battle", Frequency: 108781},
		{Word: "bank", Frequency: 66981.4},
	}, got)

	// default limit mirrors PrefixSearch
	assert.Len(t, c.Complete("ba", 0), trie.MaxPrefixResults)
	// more than ten when asked for
	assert.Len(t, c.Complete("ba", 20), 12)
	assert.Empty(t, c.Complete("xyz", 5))
}

func TestCompleteCapitalization(t *testing.T) {
	c := newTestCompleter(t, 16)

	got := c.Complete("Ba", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "Back", got[0].Word)
	assert.Equal(t, "Battle", got[1].Word)

	got = c.Complete("BA", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "BAck", got[0].Word)

	// the cache is keyed on the lower case prefix
	assert.Equal(t, "back", c.Complete("ba", 1)[0].Word)
}

func TestCompleteUsesCache(t *testing.T) {
	c := newTestCompleter(t, 16)

	c.Complete("ba", 5)
	c.Complete("ba", 5)
	c.Complete("Ba", 2)

	stats := c.Stats()
	assert.Equal(t, 1, stats["cachedPrefixes"])
	assert.Equal(t, 2, stats["cacheHits"])
	assert.Equal(t, 1, stats["cacheMisses"])
}

func TestAddRemoveInvalidatesCache(t *testing.T) {
	c := newTestCompleter(t, 16)

	require.Equal(t, "back", c.Complete("ba", 1)[0].Word)
	c.Complete("b", 1)
	c.Complete("ca", 1)

	require.NoError(t, c.Add("Bazooka", 999999))
	assert.Equal(t, "bazooka", c.Complete("ba", 1)[0].Word)
	// b and ba were dropped, ca was not a prefix of bazooka
	assert.Equal(t, 2, c.cache.Len())

	require.NoError(t, c.Remove("bazooka"))
	assert.Equal(t, "back", c.Complete("ba", 1)[0].Word)

	require.NoError(t, c.Remove("back"))
	assert.Equal(t, "battle", c.Complete("ba", 1)[0].Word)
	assert.ErrorIs(t, c.Has("back"), trie.ErrNotFound)
}

func TestCompleterQueries(t *testing.T) {
	c := newTestCompleter(t, 0)

	assert.NoError(t, c.Has("Many"))
	assert.ErrorIs(t, c.Has("moonwalk"), trie.ErrNotFound)
	assert.ErrorIs(t, c.Remove("moonwalk"), trie.ErrNotFound)
	assert.ErrorIs(t, c.Add("", 1), trie.ErrInvalidWord)

	assert.Equal(t, 30, c.Count())
	words := c.Words(false)
	assert.Equal(t, "that", words[0])
	assert.Equal(t, "xhosa", words[len(words)-1])
	sorted := c.Words(true)
	assert.Equal(t, "baby", sorted[0])
	assert.Len(t, sorted, 30)

	assert.Equal(t, []string{"bring", "king", "ring", "sing", "string", "thing"}, c.Suffix("ING"))
	assert.Equal(t, []string{"cat", "cot", "cut"}, c.Correct("cxt"))

	f, err := c.Frequency("xhosa")
	require.NoError(t, err)
	assert.Equal(t, 118.2, f)
}

func TestPrefixCacheEviction(t *testing.T) {
	pc := NewPrefixCache(2)
	pc.Put("a", []trie.Match{{Word: "ant", Frequency: 1}})
	pc.Put("b", []trie.Match{{Word: "bee", Frequency: 1}})

	_, ok := pc.Get("a")
	require.True(t, ok)

	// b is now the least recently used
	pc.Put("c", nil)
	_, ok = pc.Get("b")
	assert.False(t, ok)
	_, ok = pc.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, pc.Len())
}

func TestPrefixCacheInvalidate(t *testing.T) {
	pc := NewPrefixCache(10)
	for _, p := range []string{"b", "ba", "ban", "bank", "bar", "c"} {
		pc.Put(p, nil)
	}

	assert.Equal(t, 4, pc.Invalidate("bank"))
	for _, p := range []string{"bar", "c"} {
		_, ok := pc.Get(p)
		assert.True(t, ok, p)
	}
	for _, p := range []string{"b", "ba", "ban", "bank"} {
		_, ok := pc.Get(p)
		assert.False(t, ok, p)
	}

	pc.Clear()
	assert.Equal(t, 0, pc.Len())
}

func TestPrefixCacheDisabled(t *testing.T) {
	pc := NewPrefixCache(0)
	pc.Put("a", nil)
	_, ok := pc.Get("a")
	assert.False(t, ok)
}

func TestCompleterConcurrentAccess(t *testing.T) {
	c := newTestCompleter(t, 8)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c.Complete("ba", 5)
				c.Suffix("ing")
			}
		}(w)
		go func(id int) {
			defer wg.Done()
			word := fmt.Sprintf("bat%c", 'a'+rune(id))
			for i := 0; i < 50; i++ {
				assert.NoError(t, c.Add(word, float64(i)))
				assert.NoError(t, c.Remove(word))
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 30, c.Count())
}
