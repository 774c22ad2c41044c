package trie

import "sort"

// Suggest returns spelling suggestions for word. A stored word is its own
// only suggestion. Otherwise the candidates are stored words of the same
// length that differ from word in at most one position and share its last
// character. The result is sorted and empty when nothing qualifies.
func (t *Trie) Suggest(word string) []string {
	suggestions := []string{}
	target := []rune(word)
	if t.root == nil || len(target) == 0 {
		return suggestions
	}
	if ok, _ := t.HasWord(word); ok {
		return []string{word}
	}

	path := make([]rune, 0, len(target))
	for _, child := range t.root.children {
		suggestions = substitute(child, target, path, false, suggestions)
	}
	sort.Strings(suggestions)
	return suggestions
}

// substitute walks n allowing one differing character on the path.
func substitute(n *Node, target, path []rune, mismatched bool, out []string) []string {
	path = append(path, n.char)
	pos := len(path) - 1

	if n.char != target[pos] {
		if mismatched {
			return out
		}
		mismatched = true
	}

	if len(path) == len(target) {
		if n.terminal && n.char == target[pos] {
			out = append(out, string(path))
		}
		return out
	}

	for _, child := range n.children {
		out = substitute(child, target, path, mismatched, out)
	}
	return out
}
