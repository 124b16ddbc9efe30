// Package catalog holds the card collection keyed by canonical name, together
// with the name index built from it.
package catalog

import (
	"time"

	"github.com/codyseavey/archimago/internal/models"
	"github.com/codyseavey/archimago/internal/names"
	"github.com/codyseavey/archimago/internal/trie"
)

// Catalog maps canonical card names to card records. It is read-only after New.
type Catalog struct {
	cards map[string]models.Card
	names []string
}

// New builds a catalog. When two cards share a canonical name the first wins.
func New(cards []models.Card) *Catalog {
	c := &Catalog{
		cards: make(map[string]models.Card, len(cards)),
		names: make([]string, 0, len(cards)),
	}

	for _, card := range cards {
		key := names.Normalize(card.Name)
		if _, exists := c.cards[key]; exists {
			continue
		}
		c.cards[key] = card
		c.names = append(c.names, key)
	}

	return c
}

// Lookup finds a card by display or canonical name.
func (c *Catalog) Lookup(name string) (models.Card, bool) {
	card, ok := c.cards[names.Normalize(name)]
	return card, ok
}

// Names returns every canonical name in load order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of cards.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Snapshot pairs a catalog with the prefix tree over its names. A snapshot is
// never modified after NewSnapshot returns, so it can be shared freely.
type Snapshot struct {
	Catalog  *Catalog
	Index    *trie.Trie
	LoadedAt time.Time
}

// NewSnapshot builds a catalog and name index from cards.
func NewSnapshot(cards []models.Card) *Snapshot {
	c := New(cards)
	return &Snapshot{
		Catalog:  c,
		Index:    trie.NewFromWords(c.Names()),
		LoadedAt: time.Now(),
	}
}

// Search returns cards whose canonical name starts with the normalized query,
// falling back to the single best fuzzy match. At most limit cards are returned.
func (s *Snapshot) Search(query string, limit int) *models.CardSearchResult {
	key := names.Normalize(query)
	result := &models.CardSearchResult{Cards: []models.Card{}}

	matches, ok := s.Index.StartsWith(key)
	if !ok || len(matches) == 0 {
		if m, found := s.Index.FuzzyMatch(key); found {
			matches = []string{m.Word}
		}
	}

	result.TotalCount = len(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
		result.HasMore = true
	}

	for _, name := range matches {
		if card, ok := s.Catalog.Lookup(name); ok {
			result.Cards = append(result.Cards, card)
		}
	}

	return result
}
