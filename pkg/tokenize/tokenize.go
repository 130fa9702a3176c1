// Package tokenize splits prose into words and sentences for the Vocabulary
// and Readability analyzers.
package tokenize

import (
	"regexp"
	"strings"
)

var (
	wordPattern     = regexp.MustCompile(`[A-Za-z]+(?:'[A-Za-z]+)?`)
	sentenceSplitter = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
	syllableVowels  = regexp.MustCompile(`[aeiouyAEIOUY]+`)
)

// stopWords are the closed-class/function words dropped before counting
// lexical diversity and sophistication.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "up": true, "about": true,
	"into": true, "through": true, "during": true, "before": true, "after": true,
	"above": true, "below": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true, "could": true,
	"should": true, "may": true, "might": true, "must": true, "can": true,
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true,
	"they": true, "them": true, "his": true, "her": true, "its": true, "our": true,
	"their": true, "this": true, "that": true, "these": true, "those": true,
	"as": true, "if": true, "than": true, "then": true, "so": true, "not": true,
	"no": true, "nor": true, "just": true, "too": true, "very": true, "there": true,
	"here": true, "what": true, "which": true, "who": true, "whom": true,
	"s": true, "t": true, "don": true, "re": true, "ve": true, "ll": true,
}

// IsStopWord reports whether the lowercased word is a closed-class word.
func IsStopWord(word string) bool {
	return stopWords[strings.ToLower(word)]
}

// WhitespaceWordCount counts whitespace-delimited tokens, the word-count
// definition Correctness normalizes its penalty by. Vocabulary's precision
// normalizes by alphabetic-token count instead; the two stay distinct.
func WhitespaceWordCount(text string) int {
	return len(strings.Fields(text))
}

// Token is a single alphabetic token with its lowercased form and its
// position in the source text.
type Token struct {
	Surface string
	Lower   string
	Start   int
	End     int
}

// AlphabeticTokens extracts alphabetic-only tokens from text, preserving
// surface form and byte offsets.
func AlphabeticTokens(text string) []Token {
	locs := wordPattern.FindAllStringIndex(text, -1)
	tokens := make([]Token, 0, len(locs))
	for _, loc := range locs {
		surf := text[loc[0]:loc[1]]
		tokens = append(tokens, Token{
			Surface: surf,
			Lower:   strings.ToLower(surf),
			Start:   loc[0],
			End:     loc[1],
		})
	}
	return tokens
}

// KeptTokens returns the alphabetic tokens with stop words removed, which is
// the input set both Lexical Diversity and Sophistication score against.
func KeptTokens(text string) []Token {
	all := AlphabeticTokens(text)
	kept := make([]Token, 0, len(all))
	for _, t := range all {
		if !stopWords[t.Lower] {
			kept = append(kept, t)
		}
	}
	return kept
}

// Sentences splits text into trimmed, non-empty sentences on terminal
// punctuation. Abbreviations are not special-cased.
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	parts := sentenceSplitter.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SyllableCount approximates syllable count by counting vowel groups, the
// standard heuristic used by Flesch/Dale-Chall style implementations that
// don't ship a phonetic dictionary.
func SyllableCount(word string) int {
	groups := syllableVowels.FindAllString(word, -1)
	n := len(groups)
	lower := strings.ToLower(word)
	if strings.HasSuffix(lower, "e") && !strings.HasSuffix(lower, "le") && n > 1 {
		n--
	}
	if n < 1 {
		n = 1
	}
	return n
}
