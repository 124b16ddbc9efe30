// Package glossary explains game terms loaded from a TOML file:
//
//	[term.airborne]
//	text = "Airborne minions ..."
//	alternatives = ["flying", "fly"]
package glossary

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/codyseavey/archimago/internal/names"
	"github.com/codyseavey/archimago/internal/trie"
)

// Term is a single glossary entry.
type Term struct {
	Key          string   `toml:"-" json:"key"`
	Text         string   `toml:"text" json:"text"`
	Alternatives []string `toml:"alternatives" json:"alternatives,omitempty"`
}

type document struct {
	Term map[string]Term `toml:"term"`
}

// Glossary is immutable after Parse.
type Glossary struct {
	terms        map[string]Term
	alternatives map[string]string
	index        *trie.Trie
}

// Load reads and parses a glossary file.
func Load(path string) (*Glossary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read terms file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a glossary from TOML. Term keys and alternatives are stored in
// canonical form.
func Parse(data []byte) (*Glossary, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse terms: %w", err)
	}

	g := &Glossary{
		terms:        make(map[string]Term, len(doc.Term)),
		alternatives: make(map[string]string),
	}

	keys := make([]string, 0, len(doc.Term))
	for k := range doc.Term {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		term := doc.Term[k]
		key := names.Normalize(k)
		term.Key = key
		g.terms[key] = term
		for _, alt := range term.Alternatives {
			altKey := names.Normalize(alt)
			if _, taken := g.alternatives[altKey]; !taken {
				g.alternatives[altKey] = key
			}
		}
	}

	g.index = trie.NewFromWords(g.Keys())
	return g, nil
}

// Lookup finds a term by name or by one of its alternatives.
func (g *Glossary) Lookup(name string) (Term, bool) {
	key := names.Normalize(name)
	if term, ok := g.terms[key]; ok {
		return term, true
	}
	if main, ok := g.alternatives[key]; ok {
		return g.terms[main], true
	}
	return Term{}, false
}

// Keys returns the canonical term keys in sorted order.
func (g *Glossary) Keys() []string {
	keys := make([]string, 0, len(g.terms))
	for k := range g.terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Index returns the prefix tree over term keys, used for suggestions.
func (g *Glossary) Index() *trie.Trie {
	return g.index
}

// Len returns the number of terms.
func (g *Glossary) Len() int {
	return len(g.terms)
}
