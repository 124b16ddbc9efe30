// Package trie implements the prefix tree used to resolve typed card names.
//
// A Trie is not safe for concurrent mutation. Build it once, then share it
// read-only; to rebuild, construct a new Trie and swap the reference.
package trie

import (
	"sort"
	"unicode/utf8"
)

// Node is a single prefix tree node. word holds the full path from the root so
// lookups can return it without re-deriving it.
type Node struct {
	children map[rune]*Node
	word     string
	wordNode bool
}

func newNode(word string) *Node {
	return &Node{
		children: make(map[rune]*Node),
		word:     word,
	}
}

// Trie is a prefix tree over canonical card names.
type Trie struct {
	root  *Node
	words []string
}

// New returns an empty Trie containing only the root node.
func New() *Trie {
	return &Trie{root: newNode("")}
}

// NewFromWords returns a Trie holding every word in words.
func NewFromWords(words []string) *Trie {
	t := New()
	t.InsertAll(words)
	return t
}

// InsertAll inserts every word. Insertion order does not affect the result.
func (t *Trie) InsertAll(words []string) {
	for _, w := range words {
		t.Insert(w)
	}
}

// Insert adds word to the tree. Inserting an existing word changes nothing.
func (t *Trie) Insert(word string) {
	current := t.root
	for i := 0; i < len(word); {
		ch, size := utf8.DecodeRuneInString(word[i:])
		i += size

		next, ok := current.children[ch]
		if !ok {
			next = newNode(word[:i])
			current.children[ch] = next
		}
		current = next
	}

	if !current.wordNode {
		t.words = append(t.words, word)
	}
	current.wordNode = true
}

// walk follows prefix from the root and returns the node it ends on.
func (t *Trie) walk(prefix string) (*Node, bool) {
	current := t.root
	for _, ch := range prefix {
		next, ok := current.children[ch]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Find returns the stored word when word was inserted. A missing path and a
// path that is only a prefix of longer words both report false.
func (t *Trie) Find(word string) (string, bool) {
	node, ok := t.walk(word)
	if !ok || !node.wordNode {
		return "", false
	}
	return node.word, true
}

// StartsWith returns all inserted words beginning with prefix, in lexicographic
// order. The second result is false when no inserted word has that prefix path.
func (t *Trie) StartsWith(prefix string) ([]string, bool) {
	node, ok := t.walk(prefix)
	if !ok {
		return nil, false
	}

	words := make([]string, 0)
	stack := []*Node{node}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if curr.wordNode {
			words = append(words, curr.word)
		}

		// Push in reverse so the smallest rune is visited first.
		keys := sortedKeys(curr.children)
		for i := len(keys) - 1; i >= 0; i-- {
			stack = append(stack, curr.children[keys[i]])
		}
	}

	return words, true
}

// Size returns the number of nodes including the root.
func (t *Trie) Size() int {
	count := 0
	t.visit(func(*Node) { count++ })
	return count
}

// Count returns the number of complete words.
func (t *Trie) Count() int {
	count := 0
	t.visit(func(n *Node) {
		if n.wordNode {
			count++
		}
	})
	return count
}

// Words returns a copy of the inserted words in insertion order.
func (t *Trie) Words() []string {
	out := make([]string, len(t.words))
	copy(out, t.words)
	return out
}

func (t *Trie) visit(fn func(*Node)) {
	stack := []*Node{t.root}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(curr)
		for _, child := range curr.children {
			stack = append(stack, child)
		}
	}
}

func sortedKeys(m map[rune]*Node) []rune {
	keys := make([]rune, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
