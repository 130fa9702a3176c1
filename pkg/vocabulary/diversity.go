package vocabulary

import (
	"textrefine/pkg/scoring"
	"textrefine/pkg/tokenize"
)

// Diversity computes the type-token ratio over kept (alphabetic,
// stop-word-filtered) tokens.
func Diversity(text string) scoring.LexicalDiversityResult {
	kept := tokenize.KeptTokens(text)
	seen := make(map[string]bool, len(kept))
	for _, tok := range kept {
		seen[tok.Lower] = true
	}
	n := len(kept)
	u := len(seen)
	var ttr float64
	if n > 0 {
		ttr = float64(u) / float64(n)
	}
	return scoring.LexicalDiversityResult{
		TTR:         round4Local(ttr),
		WordCount:   n,
		UniqueCount: u,
	}
}
