package commands

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codyseavey/archimago/internal/catalog"
	"github.com/codyseavey/archimago/internal/glossary"
	"github.com/codyseavey/archimago/internal/models"
	"github.com/codyseavey/archimago/internal/services"
)

func intPtr(v int) *int { return &v }

type stubCards struct {
	snap *catalog.Snapshot
}

func (s stubCards) Current() *catalog.Snapshot { return s.snap }

func testCards() stubCards {
	return stubCards{snap: catalog.NewSnapshot([]models.Card{
		{
			Name:       "Apprentice Wizard",
			Rarity:     "Ordinary",
			Type:       "Minion",
			Cost:       intPtr(3),
			Thresholds: models.Thresholds{models.ElementAir: 1},
			Sets:       []string{"Alpha", "Beta"},
		},
		{Name: "Abundance", Type: "Aura", Sets: []string{"Beta"}},
		{Name: "Arid Desert", Type: models.CardTypeSite, Sets: []string{"Alpha"}},
	})}
}

type stubDecks struct {
	decks     map[string]models.Deck
	requested []string
}

func (s *stubDecks) FetchDeck(_ context.Context, id string, _ bool) (models.Deck, error) {
	d, ok := s.decks[id]
	if !ok {
		return models.Deck{}, fmt.Errorf("%w: no deck tables", services.ErrDeckUnavailable)
	}
	return d, nil
}

func (s *stubDecks) FetchDecks(ctx context.Context, ids []string, includeMaybe bool) ([]models.Deck, error) {
	s.requested = append([]string(nil), ids...)
	out := make([]models.Deck, 0, len(ids))
	for _, id := range ids {
		d, err := s.FetchDeck(ctx, id, includeMaybe)
		if err != nil {
			return nil, &services.DeckError{ID: id, Err: err}
		}
		out = append(out, d)
	}
	return out, nil
}

type entry struct {
	category string
	name     string
	count    int
}

func buildDeck(entries ...entry) models.Deck {
	d := models.NewDeck()
	for _, e := range entries {
		d.Add(e.category, e.name, e.count)
	}
	return d
}

func testDecks() *stubDecks {
	return &stubDecks{decks: map[string]models.Deck{
		"a": buildDeck(entry{"Avatar", "Sorcerer", 1}, entry{"Spell", "bolt", 2}),
		"b": buildDeck(entry{"Avatar", "Sorcerer", 1}, entry{"Spell", "bolt", 1}, entry{"Site", "Spire", 1}),
		"c": buildDeck(entry{"Spell", "flare", 1}),
		"d": buildDeck(entry{"Spell", "bolt", 3}),
	}}
}

type stubFAQs struct {
	entries map[string][]models.FAQ
}

func (s stubFAQs) FetchFAQ(_ context.Context, name string) ([]models.FAQ, error) {
	e, ok := s.entries[name]
	if !ok {
		return nil, fmt.Errorf("failed to load FAQ for card %s: %w", name, services.ErrCardNotFound)
	}
	return e, nil
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	terms, err := glossary.Parse([]byte(`
[term.airborne]
text = "Airborne minions fly."
alternatives = ["flying"]
`))
	require.NoError(t, err)

	return NewDefaultRegistry(Dependencies{
		Cards: testCards(),
		Decks: testDecks(),
		FAQs: stubFAQs{entries: map[string][]models.FAQ{
			"apprentice_wizard": {{Question: "Can it fly?", Answer: "No."}},
		}},
		Terms:           terms,
		MaxOverlapDecks: 3,
	})
}

func run(t *testing.T, r *Registry, content string, private bool) string {
	t.Helper()
	req, ok := ParseCommand(content)
	require.True(t, ok, "not a command: %s", content)
	req.IsPrivate = private

	reply, ok := r.Dispatch(context.Background(), req)
	require.True(t, ok, "command not handled: %s", content)
	return reply
}

func TestParseCommand(t *testing.T) {
	req, ok := ParseCommand("!card  Sly   Fox")
	require.True(t, ok)
	assert.Equal(t, "card", req.Command)
	assert.Equal(t, []string{"Sly", "Fox"}, req.Params)
	assert.NotEmpty(t, req.ID)

	for _, content := range []string{"hello", "!", "! ", "card !x"} {
		_, ok := ParseCommand(content)
		assert.False(t, ok, content)
	}
}

func TestParseInline(t *testing.T) {
	tests := []struct {
		content string
		command string
		params  []string
		found   bool
	}{
		{"look at [[!Sly Fox]] now", "card", []string{"Sly", "Fox"}, true},
		{"what does [!sly fox] look like", "cimg", []string{"sly", "fox"}, true},
		{"both [!image] and [[!text]]", "card", []string{"text"}, true},
		{"no reference [here]", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			req, ok := ParseInline(tt.content)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.command, req.Command)
			assert.Equal(t, tt.params, req.Params)
		})
	}
}

func TestParse_MarksPrivate(t *testing.T) {
	reqs := Parse("!help [!abundance]", true)
	require.Len(t, reqs, 2)
	assert.Equal(t, "help", reqs[0].Command)
	assert.Equal(t, "cimg", reqs[1].Command)
	assert.True(t, reqs[0].IsPrivate)
	assert.True(t, reqs[1].IsPrivate)
}

func TestCardCommand(t *testing.T) {
	r := testRegistry(t)

	reply := run(t, r, "!card apprentice wizard", false)
	assert.True(t, strings.HasPrefix(reply, "```Name: Apprentice Wizard\n"), reply)
	assert.Contains(t, reply, "Thresholds: (A)\n")
	assert.True(t, strings.HasSuffix(reply, "```"))

	reply = run(t, r, "!card aprentice wizard", false)
	assert.Equal(t, "```Could not find card by card name: aprentice_wizard, did you mean: apprentice_wizard?```", reply)
}

func TestCardCommand_CatalogNotLoaded(t *testing.T) {
	r := NewDefaultRegistry(Dependencies{Cards: stubCards{}})

	reply := run(t, r, "!card abundance", false)
	assert.Equal(t, "Something went wrong while handling !card, try again later.", reply)
}

func TestCardImageCommand(t *testing.T) {
	r := testRegistry(t)

	reply := run(t, r, "!cimg Apprentice Wizard", false)
	assert.Equal(t, "https://curiosa.io/_next/image?url=https://d27a44hjr9gen3.cloudfront.net/alp/apprentice_wizard_b_s.png&w=384&q=75", reply)

	reply = run(t, r, "!cimg qqqq", false)
	assert.Equal(t, "```Could not find card by card name: qqqq.```", reply)
}

func TestDeckCommand(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name     string
		content  string
		private  bool
		expected string
	}{
		{"private", "!deck a", true, "Deck command can currently only be used on servers, not in private messages."},
		{"too many", "!deck a b", false, "Incorrect usage, use only 1 deck parameter at a time."},
		{"missing", "!deck", false, "Incorrect usage, provide a deck id or URL."},
		{"unknown id", "!deck nope", false, "```Failed to load deck with id: nope\nCheck that the id is a valid one.```"},
		{"unknown url", "!deck https://curiosa.io/decks/nope", false, "```Failed to load deck with url: https://curiosa.io/decks/nope\nCheck that the url is a valid one.```"},
		{"found", "!deck a", false, "```The deck with id: a has the following cards:\n\n" +
			"Avatar (1)\n  1 - Sorcerer\nSpells (2)\n  2 - bolt\n\n" +
			"Total: 2 cards(2 Spellbook, 0 Atlas)\n\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, run(t, r, tt.content, tt.private))
		})
	}
}

func TestOverlapCommand(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name     string
		content  string
		private  bool
		expected string
	}{
		{"private", "!overlap a b", true, "Overlap command can currently only be used on servers, not in private messages."},
		{"single deck", "!overlap a", false, "```Provide at least 2 deck IDs to compare.```"},
		{"no overlap", "!overlap a c", false, "```There are no overlapping cards.```"},
		{"failed deck", "!overlap a nope", false, "```Failed to load deck with id: nope\nCheck that the id is a valid one.```"},
		{"overlap", "!overlap a b", false, "```The overlapping cards are:\n\n" +
			"Avatar (1)\n  1 - Sorcerer\nSpells (1)\n  1 - bolt\n\n```"},
		// a deck without avatars leaves the avatar overlap of earlier decks alone
		{"three decks", "!overlap a b d", false, "```The overlapping cards are:\n\n" +
			"Avatar (1)\n  1 - Sorcerer\nSpells (1)\n  1 - bolt\n\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, run(t, r, tt.content, tt.private))
		})
	}
}

func TestOverlapCommand_CapsDeckCount(t *testing.T) {
	decks := testDecks()
	r := NewDefaultRegistry(Dependencies{Decks: decks, MaxOverlapDecks: 3})

	run(t, r, "!overlap a b c d", false)
	assert.Equal(t, []string{"a", "b", "c"}, decks.requested)
}

func TestFAQCommand(t *testing.T) {
	r := testRegistry(t)

	reply := run(t, r, "!faq apprentice wizard", false)
	assert.Equal(t, "```FAQ entries found for card: apprentice_wizard\n\nQ: Can it fly?\nA: No.```", reply)

	// the alias reaches the same command
	assert.Equal(t, reply, run(t, r, "!faqs Apprentice Wizard", false))

	reply = run(t, r, "!faq abundance", false)
	assert.Equal(t, "```Retrieving FAQ for card abundance failed with reason: not_found```", reply)

	reply = run(t, r, "!faq abundanse", false)
	assert.Equal(t, "```Could not find card by card name: abundanse, did you mean: abundance?```", reply)
}

func TestTermCommand(t *testing.T) {
	r := testRegistry(t)

	assert.Equal(t, "```Airborne minions fly.```", run(t, r, "!term airborne", false))
	assert.Equal(t, "```Airborne minions fly.```", run(t, r, "!term Flying", false))
	assert.Equal(t, "```No explanation found for term: airborn, did you mean: airborne?```", run(t, r, "!term airborn", false))
}

func TestRulebookCommand(t *testing.T) {
	r := testRegistry(t)
	assert.Equal(t, RulebookURL, run(t, r, "!rulebook", false))
	assert.Equal(t, RulebookURL, run(t, r, "!rb", false))
}

func TestHelpCommand(t *testing.T) {
	r := testRegistry(t)

	reply := run(t, r, "!help", false)
	assert.True(t, strings.HasPrefix(reply, "Archimago provides the following commands:\n\n- **card**: "), reply)
	assert.Contains(t, reply, "- **faq, faqs**: Gets FAQ entries from curiosa.io for given card name.\n")
	assert.Contains(t, reply, "- **rulebook, rb**: Get URL for the official rulebook.\n")
	assert.True(t, strings.HasSuffix(reply, "- **help**: Returns this message.\n"), reply)
	assert.NotContains(t, reply, "**stop**")

	reply = run(t, r, "!help rb", false)
	assert.Equal(t, "```Usage:\n\n!rulebook returns the link to the official rulebook.\n!rb # same as above```", reply)

	assert.Equal(t, "Invalid command: nope", run(t, r, "!help nope", false))
}

func TestStopCommand(t *testing.T) {
	stopped := false
	r := NewDefaultRegistry(Dependencies{Stop: func() { stopped = true }})

	replies := r.HandleMessage(context.Background(), "!stop", false)
	assert.Empty(t, replies)
	assert.True(t, stopped)
}

func TestHandleMessage(t *testing.T) {
	r := testRegistry(t)

	assert.Empty(t, r.HandleMessage(context.Background(), "just chatting", false))
	assert.Empty(t, r.HandleMessage(context.Background(), "!unknown", false))

	replies := r.HandleMessage(context.Background(), "!rb and [!abundance]", false)
	require.Len(t, replies, 2)
	assert.Equal(t, RulebookURL, replies[0])
	assert.True(t, strings.HasPrefix(replies[1], "https://curiosa.io/_next/image?url="))
}

func TestRegistry_FirstNameWins(t *testing.T) {
	r := NewRegistry()
	r.Register(RulebookCommand{})
	r.Register(NewStopCommand(func() {}))
	r.Register(rbAlias{})

	h, ok := r.Lookup("RB")
	require.True(t, ok)
	assert.Equal(t, "rulebook", h.Names()[0])
}

type rbAlias struct{ RulebookCommand }

func (rbAlias) Names() []string { return []string{"rb"} }
