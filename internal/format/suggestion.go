package format

import (
	"github.com/codyseavey/archimago/internal/trie"
)

// Suggester produces completions and corrections for a failed lookup.
// *trie.Trie implements it.
type Suggester interface {
	StartsWith(prefix string) ([]string, bool)
	FuzzyMatch(query string) (trie.Match, bool)
}

// Suggestion builds "<explanation>: <input>, did you mean: <word>?" from the
// best fuzzy match, else the first prefix completion. Without either it ends
// with a bare period. Without a suggester it reports a missing card.
func Suggestion(input string, s Suggester, explanation string) string {
	if s == nil {
		return "Could not find card by card name " + input + "."
	}

	if word, ok := SuggestWord(input, s); ok {
		return explanation + ": " + input + ", did you mean: " + word + "?"
	}
	return explanation + ": " + input + "."
}

// SuggestWord returns the word Suggestion would propose.
func SuggestWord(input string, s Suggester) (string, bool) {
	if m, ok := s.FuzzyMatch(input); ok {
		return m.Word, true
	}
	if prefixes, ok := s.StartsWith(input); ok && len(prefixes) > 0 {
		return prefixes[0], true
	}
	return "", false
}
