package trie

// Node is a single trie vertex. The root carries no character.
// Children keep insertion order, which is what AllWords and every
// traversal observe.
type Node struct {
	char      rune
	terminal  bool
	frequency float64
	children  []*Node
}

func newNode(char rune) *Node {
	return &Node{char: char}
}

// Char returns the character this node represents (zero for the root).
func (n *Node) Char() rune { return n.char }

// Terminal reports whether the path to this node spells a stored word.
func (n *Node) Terminal() bool { return n.terminal }

// Frequency is only meaningful when Terminal is true.
func (n *Node) Frequency() float64 { return n.frequency }

// Children returns the child nodes in insertion order.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) child(char rune) *Node {
	for _, c := range n.children {
		if c.char == char {
			return c
		}
	}
	return nil
}

func (n *Node) addChild(char rune) *Node {
	if c := n.child(char); c != nil {
		return c
	}
	c := newNode(char)
	n.children = append(n.children, c)
	return c
}

func (n *Node) detach(char rune) {
	for i, c := range n.children {
		if c.char == char {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *Node) isLeaf() bool {
	return len(n.children) == 0
}
