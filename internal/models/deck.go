package models

// Well known deck categories.
const (
	CategoryAvatar     = "Avatar"
	CategorySite       = "Site"
	CategoryMaybeboard = "Maybeboard"
)

// CardCount is one card line of a deck.
type CardCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Deck maps a category to its card lines. Order keeps the categories in the
// order they were first added so rendering is stable.
type Deck struct {
	Categories map[string][]CardCount `json:"categories"`
	Order      []string               `json:"order"`
}

// NewDeck returns an empty deck.
func NewDeck() Deck {
	return Deck{Categories: make(map[string][]CardCount)}
}

// AddCategory creates an empty category if it does not exist yet.
func (d *Deck) AddCategory(category string) {
	if d.Categories == nil {
		d.Categories = make(map[string][]CardCount)
	}
	if _, ok := d.Categories[category]; ok {
		return
	}
	d.Categories[category] = []CardCount{}
	d.Order = append(d.Order, category)
}

// Add appends a card line to category, creating the category if needed.
func (d *Deck) Add(category, name string, count int) {
	d.AddCategory(category)
	d.Categories[category] = append(d.Categories[category], CardCount{Name: name, Count: count})
}

// Has reports whether category exists, even when it is empty.
func (d Deck) Has(category string) bool {
	_, ok := d.Categories[category]
	return ok
}

// Len returns the number of categories.
func (d Deck) Len() int {
	return len(d.Categories)
}

// Total sums the counts in one category.
func (d Deck) Total(category string) int {
	sum := 0
	for _, c := range d.Categories[category] {
		sum += c.Count
	}
	return sum
}

// IsEmpty reports whether no category holds any card.
func (d Deck) IsEmpty() bool {
	for _, cards := range d.Categories {
		if len(cards) > 0 {
			return false
		}
	}
	return true
}
