package models

// Element is a threshold element.
type Element string

const (
	ElementAir   Element = "air"
	ElementEarth Element = "earth"
	ElementFire  Element = "fire"
	ElementWater Element = "water"
)

// Elements lists threshold elements in display order.
var Elements = []Element{ElementAir, ElementEarth, ElementFire, ElementWater}

// CardTypeSite is the type of cards that provide thresholds rather than require them.
const CardTypeSite = "Site"

// Thresholds maps an element to the number of threshold symbols.
type Thresholds map[Element]int

// Card is a single card record. Cards are immutable once loaded.
type Card struct {
	Name       string     `json:"name"`
	Rarity     string     `json:"rarity"`
	Type       string     `json:"type"`
	RulesText  string     `json:"rules_text"`
	Cost       *int       `json:"cost,omitempty"`
	Attack     *int       `json:"attack,omitempty"`
	Defence    *int       `json:"defence,omitempty"`
	Life       *int       `json:"life,omitempty"`
	Thresholds Thresholds `json:"thresholds"`
	Sets       []string   `json:"sets"`
}

// CardSearchResult is returned by name searches.
type CardSearchResult struct {
	Cards      []Card `json:"cards"`
	TotalCount int    `json:"total_count"`
	HasMore    bool   `json:"has_more"`
}

// FAQ is a single question and answer pair for a card.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
