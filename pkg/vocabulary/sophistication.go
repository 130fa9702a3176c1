package vocabulary

import (
	"math"
	"sort"
	"strings"

	"textrefine/pkg/scoring"
	"textrefine/pkg/tokenize"
)

const (
	sophSigmoidMidpoint = 0.4
	sophSigmoidSlope    = 5.0
)

// Variant selects between the linear (default) and sigmoid composite
// formulas. It is an internal construction knob, never exposed over the
// HTTP surface.
type Variant int

const (
	VariantLinear Variant = iota
	VariantSigmoid
)

// substitutionFor resolves, for a given kept token, the surface form that
// Sophistication should actually score: the token itself, unless it falls
// entirely within a Correctness issue's span, in which case the issue's
// first suggested replacement is substituted, so a typo is scored as the
// word it was meant to be rather than as an unknown. When more than one
// issue's span contains the token, the lexicographically first replacement
// among them wins, keeping the choice deterministic.
func substitutionFor(tok tokenize.Token, issues []scoring.TextIssue) string {
	var candidates []string
	for _, is := range issues {
		if len(is.Replacements) == 0 {
			continue
		}
		if is.StartOffset <= tok.Start && tok.End <= is.EndOffset() {
			candidates = append(candidates, is.Replacements[0])
		}
	}
	if len(candidates) == 0 {
		return tok.Lower
	}
	sort.Strings(candidates)
	return strings.ToLower(candidates[0])
}

// Sophistication scores the kept tokens of text against the Zipf frequency
// table, substituting correctness-flagged typos with their first suggested
// replacement before classification.
func Sophistication(text string, issues []scoring.TextIssue, variant Variant) scoring.SophisticationResult {
	kept := tokenize.KeptTokens(text)
	breakdown := map[scoring.SophisticationBand][]string{
		scoring.BandCommon:  {},
		scoring.BandMid:     {},
		scoring.BandRare:    {},
		scoring.BandUnknown: {},
	}

	n := len(kept)
	if n == 0 {
		return scoring.SophisticationResult{
			Score:     0,
			WordCount: 0,
			Level:     scoring.LevelFromScore(0),
			Breakdown: breakdown,
		}
	}

	var weightedSum float64
	var commonN, midN, rareN, unknownN int
	for _, tok := range kept {
		word := substitutionFor(tok, issues)
		z := zipfScore(word)
		b, w := band(z)
		weightedSum += w
		breakdown[b] = append(breakdown[b], word)
		switch b {
		case scoring.BandCommon:
			commonN++
		case scoring.BandMid:
			midN++
		case scoring.BandRare:
			rareN++
		case scoring.BandUnknown:
			unknownN++
		}
	}

	weighted := weightedSum / float64(n)
	meaningfulRatio := float64(rareN+midN) / float64(n)

	var score float64
	switch variant {
	case VariantSigmoid:
		ratioAdj := 1.0 / (1.0 + math.Exp(-sophSigmoidSlope*(meaningfulRatio-sophSigmoidMidpoint)))
		product := weighted * ratioAdj
		if product < 0 {
			product = 0
		}
		score = math.Min(1.0, math.Sqrt(product))
	default:
		ratioAdj := 0.5 + 0.5*meaningfulRatio
		score = math.Min(1.0, weighted*ratioAdj)
	}

	return scoring.SophisticationResult{
		Score:        round4Local(score),
		CommonCount:  commonN,
		MidCount:     midN,
		RareCount:    rareN,
		UnknownCount: unknownN,
		WordCount:    n,
		Level:        scoring.LevelFromScore(score),
		Breakdown:    breakdown,
	}
}
