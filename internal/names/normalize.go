// Package names converts card display names into the canonical identifier form
// used as the key everywhere a card name is compared.
package names

import "strings"

// stripped lists the punctuation removed from canonical names.
var stripped = []string{"'", "!"}

// Normalize lower-cases text (ASCII only), replaces spaces and hyphens with
// underscores and removes apostrophes and exclamation marks.
//
//	Normalize("Wills-o'-the-Wisp") == "wills_o_the_wisp"
//	Normalize("Fire Harpoons!")    == "fire_harpoons"
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		case c == ' ' || c == '-':
			b.WriteByte('_')
		case isStripped(c):
			// dropped
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// NormalizeWords joins words with a single space and normalizes the result.
// Chat commands arrive split on whitespace, so this restores the typed name.
func NormalizeWords(words []string) string {
	return Normalize(strings.Join(words, " "))
}

func isStripped(c byte) bool {
	for _, s := range stripped {
		if s[0] == c {
			return true
		}
	}
	return false
}
