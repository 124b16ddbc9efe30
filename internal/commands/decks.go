package commands

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/codyseavey/archimago/internal/deck"
	"github.com/codyseavey/archimago/internal/format"
	"github.com/codyseavey/archimago/internal/models"
	"github.com/codyseavey/archimago/internal/services"
)

// DefaultMaxOverlapDecks bounds how many decks one overlap request fetches.
const DefaultMaxOverlapDecks = 3

// DeckFetcher loads decks from curiosa.io. *services.CuriosaService
// implements it.
type DeckFetcher interface {
	FetchDeck(ctx context.Context, idOrURL string, includeMaybe bool) (models.Deck, error)
	FetchDecks(ctx context.Context, ids []string, includeMaybe bool) ([]models.Deck, error)
}

// DeckCommand lists the cards of a deck.
type DeckCommand struct {
	decks DeckFetcher
}

func NewDeckCommand(decks DeckFetcher) *DeckCommand {
	return &DeckCommand{decks: decks}
}

func (c *DeckCommand) Names() []string { return []string{"deck"} }

func (c *DeckCommand) Summary() string {
	return "Gets cards belonging to a deck from a curiosa.io URL or ID."
}

func (c *DeckCommand) Usage() string {
	return "Usage:\n\n!deck <id> returns the cards of the curiosa.io deck with given id.\n!deck <url> # same as above, using the deck URL"
}

func (c *DeckCommand) Run(ctx context.Context, req Request) (string, error) {
	if req.IsPrivate {
		return "Deck command can currently only be used on servers, not in private messages.", nil
	}
	if len(req.Params) > 1 {
		return "Incorrect usage, use only 1 deck parameter at a time.", nil
	}
	if len(req.Params) == 0 {
		return "Incorrect usage, provide a deck id or URL.", nil
	}

	ref := req.Params[0]
	kind := "id"
	if strings.Contains(ref, "/") {
		kind = "url"
	}

	d, err := c.decks.FetchDeck(ctx, ref, false)
	if err != nil {
		log.Printf("[%s] Failed to load deck %s: %v", req.ID, ref, err)
		return format.CodeBlock(deckFailure(kind, ref)), nil
	}

	var b strings.Builder
	if kind == "url" {
		b.WriteString("The deck from url: " + ref + " has the following cards:\n\n")
	} else {
		b.WriteString("The deck with id: " + ref + " has the following cards:\n\n")
	}
	b.WriteString(format.Deck(d))
	b.WriteString(format.CardCounts(d))

	return format.CodeBlock(format.Truncate(b.String(), 6)), nil
}

func deckFailure(kind, ref string) string {
	return "Failed to load deck with " + kind + ": " + ref + "\nCheck that the " + kind + " is a valid one."
}

// OverlapCommand shows the cards that a group of decks have in common.
type OverlapCommand struct {
	decks    DeckFetcher
	maxDecks int
}

// NewOverlapCommand creates the overlap command. Requests naming more than
// maxDecks decks only use the first maxDecks.
func NewOverlapCommand(decks DeckFetcher, maxDecks int) *OverlapCommand {
	if maxDecks < 2 {
		maxDecks = DefaultMaxOverlapDecks
	}
	return &OverlapCommand{decks: decks, maxDecks: maxDecks}
}

func (c *OverlapCommand) Names() []string { return []string{"overlap"} }

func (c *OverlapCommand) Summary() string {
	return "Get overlapping cards between decks having provided at least 2 deck IDs."
}

func (c *OverlapCommand) Usage() string {
	return "Usage:\n\n!overlap <id#1> <id#2> returns the overlapping cards between two deck IDs.\n" +
		"Up to " + strconv.Itoa(c.maxDecks) + " deck IDs are compared."
}

func (c *OverlapCommand) Run(ctx context.Context, req Request) (string, error) {
	if req.IsPrivate {
		return "Overlap command can currently only be used on servers, not in private messages.", nil
	}

	ids := req.Params
	if len(ids) > c.maxDecks {
		ids = ids[:c.maxDecks]
	}
	if len(ids) < 2 {
		return format.CodeBlock("Provide at least 2 deck IDs to compare."), nil
	}

	decks, err := c.decks.FetchDecks(ctx, ids, false)
	if err != nil {
		log.Printf("[%s] Failed to load decks for overlap: %v", req.ID, err)
		var deckErr *services.DeckError
		if errors.As(err, &deckErr) {
			return format.CodeBlock(deckFailure("id", deckErr.ID)), nil
		}
		return format.CodeBlock("Failed to load decks, check that the ids are valid ones."), nil
	}

	overlap, err := deck.Overlap(decks...)
	if err != nil {
		return format.CodeBlock("Provide at least 2 deck IDs to compare."), nil
	}

	return format.CodeBlock(format.Truncate(OverlapText(overlap), 6)), nil
}

// OverlapText renders an overlap result.
func OverlapText(overlap models.Deck) string {
	if overlap.IsEmpty() {
		return "There are no overlapping cards."
	}
	return "The overlapping cards are:\n\n" + format.Deck(overlap)
}
