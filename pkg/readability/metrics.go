// Package readability implements the Readability analyzer: Flesch Reading
// Ease, Dale-Chall, and mean words-per-sentence, combined into a composite
// score with audience-appropriateness adjustment.
package readability

import (
	_ "embed"
	"math"
	"strings"
	"sync"

	"textrefine/pkg/tokenize"
)

//go:embed data/dale_chall_easy_words.txt
var embeddedEasyWords string

var (
	easyWordsOnce sync.Once
	easyWords     map[string]bool
)

func dalechallEasyWords() map[string]bool {
	easyWordsOnce.Do(func() {
		easyWords = make(map[string]bool)
		for _, line := range strings.Split(embeddedEasyWords, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "#") {
				continue
			}
			for _, field := range strings.Fields(line) {
				easyWords[strings.ToLower(field)] = true
			}
		}
	})
	return easyWords
}

// rawMetrics bundles the three base formulae's inputs/outputs before
// composite scoring.
type rawMetrics struct {
	FleschReadingEase   float64
	DaleChallScore      float64
	AvgWordsPerSentence float64
	WordCount           int
}

func computeRawMetrics(text string) rawMetrics {
	sentences := tokenize.Sentences(text)
	words := tokenize.AlphabeticTokens(text)
	wordCount := len(words)
	sentenceCount := len(sentences)
	if sentenceCount == 0 {
		sentenceCount = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += tokenize.SyllableCount(w.Surface)
	}

	var fre float64
	var avgWordsPerSentence float64
	if wordCount > 0 {
		wordsPerSentence := float64(wordCount) / float64(sentenceCount)
		syllablesPerWord := float64(syllables) / float64(wordCount)
		fre = 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
		avgWordsPerSentence = wordsPerSentence
	}
	fre = clamp(fre, 0, 100)

	dc := daleChallScore(words, sentenceCount, wordCount)

	return rawMetrics{
		FleschReadingEase:   fre,
		DaleChallScore:      dc,
		AvgWordsPerSentence: avgWordsPerSentence,
		WordCount:           wordCount,
	}
}

// daleChallScore computes the classical Dale-Chall formula: 0.1579 *
// (difficult_words / words * 100) + 0.0496 * (words / sentences), with the
// standard +3.6365 adjustment when difficult-word percentage exceeds 5%,
// clamped to [0,10].
func daleChallScore(words []tokenize.Token, sentenceCount, wordCount int) float64 {
	if wordCount == 0 {
		return 0
	}
	easy := dalechallEasyWords()
	difficult := 0
	for _, w := range words {
		if !isEasyWord(w.Lower, easy) {
			difficult++
		}
	}
	pctDifficult := float64(difficult) / float64(wordCount) * 100
	wordsPerSentence := float64(wordCount) / float64(sentenceCount)

	raw := 0.1579*pctDifficult + 0.0496*wordsPerSentence
	if pctDifficult > 5 {
		raw += 3.6365
	}
	return clamp(raw, 0, 10)
}

// isEasyWord checks the word and its un-inflected base forms against the
// easy-word list, since the list carries base forms only.
func isEasyWord(word string, easy map[string]bool) bool {
	if easy[word] {
		return true
	}
	for _, suffix := range []string{"ies", "ing", "ed", "es", "s", "d"} {
		if !strings.HasSuffix(word, suffix) || len(word) <= len(suffix)+1 {
			continue
		}
		base := strings.TrimSuffix(word, suffix)
		if suffix == "ies" {
			base += "y"
		}
		if easy[base] || easy[base+"e"] {
			return true
		}
		// running -> runn -> run
		if n := len(base); suffix == "ing" && n > 1 && base[n-1] == base[n-2] && easy[base[:n-1]] {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// EstimateReadingTimeSeconds approximates reading time at ~200 words/min.
func EstimateReadingTimeSeconds(wordCount int) float64 {
	const wordsPerMinute = 200.0
	return math.Round(float64(wordCount) / wordsPerMinute * 60)
}
