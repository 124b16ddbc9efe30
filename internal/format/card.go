package format

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/codyseavey/archimago/internal/models"
	"github.com/codyseavey/archimago/internal/names"
)

const (
	imageBaseURL   = "https://curiosa.io/_next/image?url=https://d27a44hjr9gen3.cloudfront.net/"
	imageExtension = "_b_s.png&w=384&q=75"
)

type cardField struct {
	label string
	value string
	set   bool
}

// Card renders the details of a card, one "Field: value" line each. Fields
// that are empty or absent are left out.
func Card(card models.Card) string {
	var b strings.Builder
	b.WriteString("Name: " + card.Name + "\n")

	fields := []cardField{
		{"rarity", card.Rarity, card.Rarity != ""},
		{"type", card.Type, card.Type != ""},
		{"Rules Text", card.RulesText, card.RulesText != ""},
		intField("cost", card.Cost),
		intField("attack", card.Attack),
		intField("defence", card.Defence),
		intField("life", card.Life),
	}

	// Casers keep state, so each render gets its own.
	caption := cases.Title(language.English)
	for _, f := range fields {
		if !f.set {
			continue
		}
		b.WriteString(caption.String(f.label) + ": " + f.value + "\n")
	}

	if thresholds := Thresholds(card.Thresholds); thresholds != "" {
		if card.Type == models.CardTypeSite {
			b.WriteString("Provided thresholds: " + thresholds + "\n")
		} else {
			b.WriteString("Thresholds: " + thresholds + "\n")
		}
	}

	b.WriteString("Sets: " + Sets(card) + "\n")
	return b.String()
}

func intField(label string, v *int) cardField {
	if v == nil {
		return cardField{label: label}
	}
	return cardField{label: label, value: strconv.Itoa(*v), set: true}
}

// Thresholds renders one "(X)" per threshold symbol, X being the element's
// initial. Two water thresholds render as "(W)(W)".
func Thresholds(t models.Thresholds) string {
	var b strings.Builder
	for _, el := range models.Elements {
		v := t[el]
		if v <= 0 {
			continue
		}
		symbol := "(" + strings.ToUpper(string(el)[:1]) + ")"
		b.WriteString(strings.Repeat(symbol, v))
	}
	return b.String()
}

// Sets joins the card's set names.
func Sets(card models.Card) string {
	return strings.Join(card.Sets, ", ")
}

// ImageURL builds the curiosa.io image URL of a card's first printing.
func ImageURL(card models.Card) string {
	set := Sets(card)
	if len(set) > 3 {
		set = set[:3]
	}
	return imageBaseURL + strings.ToLower(set) + "/" + names.Normalize(card.Name) + imageExtension
}

// FAQ renders FAQ entries for a card.
func FAQ(cardName string, entries []models.FAQ) string {
	if len(entries) == 0 {
		return "No FAQ entries found for card: " + cardName + "."
	}

	var b strings.Builder
	b.WriteString("FAQ entries found for card: " + cardName + "\n\n")
	for _, e := range entries {
		b.WriteString("Q: " + e.Question + "\n")
		b.WriteString("A: " + e.Answer + "\n\n")
	}
	return strings.TrimRight(b.String(), " \n")
}
