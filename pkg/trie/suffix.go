package trie

import "sort"

// SuffixSearch returns the stored words ending in suffix, sorted.
//
// The walk keeps a single cursor into suffix per path: a matching
// character advances it, any other character resets it to zero without
// re-testing that character. Suffixes that overlap themselves ("aab"
// against "aaab") can therefore be missed.
func (t *Trie) SuffixSearch(suffix string) []string {
	words := []string{}
	target := []rune(suffix)
	if t.root == nil || len(target) == 0 {
		return words
	}

	path := make([]rune, 0, 32)
	for _, child := range t.root.children {
		words = matchSuffix(child, target, 0, path, words)
	}
	sort.Strings(words)
	return words
}

func matchSuffix(n *Node, suffix []rune, cursor int, path []rune, words []string) []string {
	path = append(path, n.char)

	switch {
	case n.char != suffix[cursor]:
		cursor = 0
	case cursor == len(suffix)-1:
		if n.terminal {
			words = append(words, string(path))
		}
		cursor = 0
	default:
		cursor++
	}

	for _, child := range n.children {
		words = matchSuffix(child, suffix, cursor, path, words)
	}
	return words
}
