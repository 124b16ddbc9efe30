package trie

import (
	"github.com/agnivade/levenshtein"
)

// MinFuzzyScore is the score a candidate must exceed to be returned.
const MinFuzzyScore = 0.5

// pruneWindow is how many leading runes take part in the candidate filter.
const pruneWindow = 4

// Match is a fuzzy match result.
type Match struct {
	Word  string
	Score float64
}

// FuzzyMatch returns the inserted word most similar to query. Similarity is
// computed against the flat word list rather than the tree, since it is not
// local to a prefix. Candidates are first pruned to words sharing at least one
// rune within their leading runes with the query's leading runes.
func (t *Trie) FuzzyMatch(query string) (Match, bool) {
	q := []rune(query)

	var best Match
	found := false
	for _, word := range t.words {
		w := []rune(word)
		if !sharesLeadingRune(q, w) {
			continue
		}

		m := Match{Word: word, Score: Similarity(query, word)}
		if !found || better(m, best) {
			best = m
			found = true
		}
	}

	if !found || best.Score <= MinFuzzyScore {
		return Match{}, false
	}
	return best, true
}

// Similarity returns a ratio in [0, 1] derived from the edit distance between
// a and b, normalized by the longer rune length. Identical strings score 1.
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// better orders matches by score, then by word, the larger pair winning.
func better(a, b Match) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Word > b.Word
}

func sharesLeadingRune(query, candidate []rune) bool {
	qn := min(pruneWindow, len(query))
	cn := min(pruneWindow, len(candidate))

	for _, qc := range query[:qn] {
		for _, cc := range candidate[:cn] {
			if qc == cc {
				return true
			}
		}
	}
	return false
}
