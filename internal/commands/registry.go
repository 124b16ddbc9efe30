package commands

import (
	"github.com/codyseavey/archimago/internal/glossary"
)

// Dependencies are the collaborators of the default command set.
type Dependencies struct {
	Cards           SnapshotProvider
	Decks           DeckFetcher
	FAQs            FAQFetcher
	Terms           *glossary.Glossary
	MaxOverlapDecks int

	// Stop enables the stop command when set.
	Stop func()
}

// NewDefaultRegistry registers the full command set. Commands whose
// collaborator is missing are left out.
func NewDefaultRegistry(deps Dependencies) *Registry {
	r := NewRegistry()

	if deps.Cards != nil {
		r.Register(NewCardCommand(deps.Cards))
		r.Register(NewCardImageCommand(deps.Cards))
	}
	if deps.Decks != nil {
		r.Register(NewDeckCommand(deps.Decks))
		r.Register(NewOverlapCommand(deps.Decks, deps.MaxOverlapDecks))
	}
	if deps.Cards != nil && deps.FAQs != nil {
		r.Register(NewFAQCommand(deps.Cards, deps.FAQs))
	}
	if deps.Terms != nil {
		r.Register(NewTermCommand(deps.Terms))
	}
	r.Register(RulebookCommand{})
	if deps.Stop != nil {
		r.Register(NewStopCommand(deps.Stop))
	}
	NewHelpCommand(r)

	return r
}
