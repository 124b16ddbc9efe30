// Package format renders catalog and deck data as chat message text.
package format

import (
	"fmt"
	"strings"

	"github.com/codyseavey/archimago/internal/models"
)

// Deck renders one block per non-empty category: a header with the category
// total followed by "count - name" lines.
func Deck(d models.Deck) string {
	var b strings.Builder

	for _, category := range d.Order {
		cards := d.Categories[category]
		sum := d.Total(category)
		if sum == 0 {
			continue
		}

		suffix := "s"
		if category == models.CategoryAvatar {
			suffix = ""
		}
		fmt.Fprintf(&b, "%s%s (%d)\n", category, suffix, sum)
		for _, c := range cards {
			fmt.Fprintf(&b, "  %d - %s\n", c.Count, c.Name)
		}
	}

	b.WriteString("\n")
	return b.String()
}

// CardCounts summarizes a deck as spellbook and atlas totals. Avatars are not
// counted.
func CardCounts(d models.Deck) string {
	total, atlas := 0, 0
	for category := range d.Categories {
		if category == models.CategoryAvatar {
			continue
		}
		sum := d.Total(category)
		total += sum
		if category == models.CategorySite {
			atlas += sum
		}
	}

	return fmt.Sprintf("Total: %d cards(%d Spellbook, %d Atlas)\n\n", total, total-atlas, atlas)
}
