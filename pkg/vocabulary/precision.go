package vocabulary

import (
	"textrefine/pkg/scoring"
	"textrefine/pkg/tokenize"
)

// Precision filters Correctness's issues to the word-usage/stylistic
// subset and scores the penalty against the alphabetic token count.
func Precision(text string, issues []scoring.TextIssue) scoring.PrecisionResult {
	alphabeticCount := len(tokenize.AlphabeticTokens(text))
	return scoring.NewPrecisionResult(alphabeticCount, issues)
}
