package trie

import "sort"

// MaxPrefixResults caps PrefixSearch.
const MaxPrefixResults = 10

// Match is a completion candidate with its stored frequency.
type Match struct {
	Word      string
	Frequency float64
}

// PrefixSearch returns up to MaxPrefixResults words starting with prefix,
// most frequent first. No match is an empty result, not an error.
func (t *Trie) PrefixSearch(prefix string) []Match {
	return t.PrefixSearchN(prefix, MaxPrefixResults)
}

// PrefixSearchN is PrefixSearch with a caller supplied cap. A limit <= 0
// returns every match.
func (t *Trie) PrefixSearchN(prefix string, limit int) []Match {
	matches := []Match{}
	anchor := t.find(prefix)
	if anchor == nil {
		return matches
	}

	// The anchor node supplies the last character of prefix itself.
	stem := []rune(prefix)
	stem = stem[:len(stem)-1]
	path := make([]rune, len(stem), len(stem)+32)
	copy(path, stem)

	collect(anchor, path, func(word []rune, n *Node) {
		matches = append(matches, Match{Word: string(word), Frequency: n.frequency})
	})

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Frequency > matches[j].Frequency
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
