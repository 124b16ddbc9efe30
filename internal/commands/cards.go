package commands

import (
	"context"
	"errors"
	"log"

	"github.com/codyseavey/archimago/internal/catalog"
	"github.com/codyseavey/archimago/internal/format"
	"github.com/codyseavey/archimago/internal/metrics"
	"github.com/codyseavey/archimago/internal/models"
	"github.com/codyseavey/archimago/internal/names"
	"github.com/codyseavey/archimago/internal/services"
)

const cardNotFound = "Could not find card by card name"

// SnapshotProvider hands out the active card catalog. *catalog.Store
// implements it.
type SnapshotProvider interface {
	Current() *catalog.Snapshot
}

// FAQFetcher loads FAQ entries for a card.
type FAQFetcher interface {
	FetchFAQ(ctx context.Context, cardName string) ([]models.FAQ, error)
}

// cardLookup resolves a card name against the active snapshot. On a miss it
// returns the suggestion text instead of a card.
func cardLookup(cards SnapshotProvider, params []string) (models.Card, string, error) {
	snap := cards.Current()
	if snap == nil {
		return models.Card{}, "", catalog.ErrNotLoaded
	}

	name := names.NormalizeWords(params)
	if card, ok := snap.Catalog.Lookup(name); ok {
		metrics.CardLookupsTotal.WithLabelValues("found").Inc()
		return card, "", nil
	}

	if _, ok := format.SuggestWord(name, snap.Index); ok {
		metrics.CardLookupsTotal.WithLabelValues("suggested").Inc()
	} else {
		metrics.CardLookupsTotal.WithLabelValues("missing").Inc()
	}
	return models.Card{}, format.Suggestion(name, snap.Index, cardNotFound), nil
}

// CardCommand shows the details of a card.
type CardCommand struct {
	cards SnapshotProvider
}

func NewCardCommand(cards SnapshotProvider) *CardCommand {
	return &CardCommand{cards: cards}
}

func (c *CardCommand) Names() []string { return []string{"card"} }

func (c *CardCommand) Summary() string {
	return "Get information about a card by providing a card name."
}

func (c *CardCommand) Usage() string {
	return "Usage:\n\n!card <card_name> returns information about given card name."
}

func (c *CardCommand) Run(_ context.Context, req Request) (string, error) {
	card, suggestion, err := cardLookup(c.cards, req.Params)
	if err != nil {
		return "", err
	}
	if suggestion != "" {
		return format.CodeBlock(suggestion), nil
	}
	return format.CodeBlock(format.Card(card)), nil
}

// CardImageCommand links the image of a card.
type CardImageCommand struct {
	cards SnapshotProvider
}

func NewCardImageCommand(cards SnapshotProvider) *CardImageCommand {
	return &CardImageCommand{cards: cards}
}

func (c *CardImageCommand) Names() []string { return []string{"cimg"} }

func (c *CardImageCommand) Summary() string { return "Gets card image in URL form." }

func (c *CardImageCommand) Usage() string {
	return "Usage:\n\n!cimg <card_name> returns the URL for the image of the given card name."
}

// Run replies with the bare URL so that Discord embeds the image.
func (c *CardImageCommand) Run(_ context.Context, req Request) (string, error) {
	card, suggestion, err := cardLookup(c.cards, req.Params)
	if err != nil {
		return "", err
	}
	if suggestion != "" {
		return format.CodeBlock(suggestion), nil
	}
	return format.ImageURL(card), nil
}

// FAQCommand lists the curiosa.io FAQ entries of a card.
type FAQCommand struct {
	cards SnapshotProvider
	faqs  FAQFetcher
}

func NewFAQCommand(cards SnapshotProvider, faqs FAQFetcher) *FAQCommand {
	return &FAQCommand{cards: cards, faqs: faqs}
}

func (c *FAQCommand) Names() []string { return []string{"faq", "faqs"} }

func (c *FAQCommand) Summary() string {
	return "Gets FAQ entries from curiosa.io for given card name."
}

func (c *FAQCommand) Usage() string {
	return "Usage:\n\n!faq <card_name> returns the FAQ entries for given card name.\n!faqs # same as above"
}

func (c *FAQCommand) Run(ctx context.Context, req Request) (string, error) {
	_, suggestion, err := cardLookup(c.cards, req.Params)
	if err != nil {
		return "", err
	}
	if suggestion != "" {
		return format.CodeBlock(suggestion), nil
	}

	name := names.NormalizeWords(req.Params)
	entries, err := c.faqs.FetchFAQ(ctx, name)
	if err != nil {
		log.Printf("[%s] Failed to load FAQ for card name %s: %v", req.ID, name, err)
		return format.CodeBlock("Retrieving FAQ for card " + name + " failed with reason: " + faqFailure(err)), nil
	}

	// preserve room for the code block fences
	return format.CodeBlock(format.Truncate(format.FAQ(name, entries), 6)), nil
}

func faqFailure(err error) string {
	switch {
	case errors.Is(err, services.ErrCardNotFound):
		return "not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "request_failed"
	}
}
