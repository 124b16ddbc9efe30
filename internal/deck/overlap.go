package deck

import (
	"errors"

	"github.com/codyseavey/archimago/internal/models"
)

var (
	// ErrNoDecks is returned when Overlap is called without any deck.
	ErrNoDecks = errors.New("no decks to compare")

	// ErrNothingToCompare is returned for a single deck. It lets callers tell
	// "nothing was compared" apart from "no cards overlap".
	ErrNothingToCompare = errors.New("at least two decks are required to compare")
)

// Overlap returns the cards the decks share, per category, with the lowest
// count seen. The first deck is the base: only its categories appear in the
// result, and every one of them does, possibly empty.
//
// Each later deck narrows the counts of cards already in the result and adds
// base cards it shares that are not in the result yet. Cards are never removed
// once added.
func Overlap(decks ...models.Deck) (models.Deck, error) {
	if len(decks) == 0 {
		return models.NewDeck(), ErrNoDecks
	}
	if len(decks) == 1 {
		return models.NewDeck(), ErrNothingToCompare
	}

	base := decks[0]
	result := models.NewDeck()
	for _, category := range categories(base) {
		result.AddCategory(category)
	}

	for _, d := range decks[1:] {
		for _, category := range categories(d) {
			if !base.Has(category) {
				continue
			}

			current := d.Categories[category]
			resolved := make(map[string]bool)

			accumulated := result.Categories[category]
			for i, e := range accumulated {
				for _, ce := range current {
					if ce.Name == e.Name {
						accumulated[i].Count = min(accumulated[i].Count, ce.Count)
						resolved[e.Name] = true
					}
				}
			}

			for _, e := range base.Categories[category] {
				for _, ce := range current {
					if ce.Name == e.Name && !resolved[ce.Name] {
						result.Add(category, e.Name, min(e.Count, ce.Count))
					}
				}
			}
		}
	}

	return result, nil
}

// categories returns the deck's categories in insertion order. Decks built by
// hand may leave Order empty; their map keys are used instead.
func categories(d models.Deck) []string {
	if len(d.Order) == len(d.Categories) {
		return d.Order
	}

	out := make([]string, 0, len(d.Categories))
	seen := make(map[string]bool, len(d.Categories))
	for _, c := range d.Order {
		if _, ok := d.Categories[c]; ok && !seen[c] {
			out = append(out, c)
			seen[c] = true
		}
	}
	for c := range d.Categories {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}
