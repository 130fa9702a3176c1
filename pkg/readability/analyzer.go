package readability

import (
	"context"
	"math"

	"go.opentelemetry.io/otel"

	"textrefine/pkg/cache"
	"textrefine/pkg/scoring"
)

const resultCacheSize = 128

var tracer = otel.Tracer("textrefine/readability")

// Analyzer produces ReadabilityResults.
type Analyzer struct {
	cache *cache.Result[scoring.ReadabilityResult]
}

// New builds a Readability analyzer.
func New() *Analyzer {
	return &Analyzer{cache: cache.NewResult[scoring.ReadabilityResult](resultCacheSize)}
}

// Analyze computes the ReadabilityResult for text and, when audience is
// non-empty, the audience-fit adjustment.
func (a *Analyzer) Analyze(ctx context.Context, text, audience string) scoring.ReadabilityResult {
	_, span := tracer.Start(ctx, "readability.analyze")
	defer span.End()

	key := text + "\x00" + audience
	if cached, ok := a.cache.Get(key); ok {
		return cached
	}

	raw := computeRawMetrics(text)
	score := compositeScore(raw.FleschReadingEase, raw.DaleChallScore, raw.AvgWordsPerSentence)

	result := scoring.ReadabilityResult{
		FleschReadingEase:    round2(raw.FleschReadingEase),
		DaleChallScore:       round2(raw.DaleChallScore),
		AvgWordsPerSentence:  round2(raw.AvgWordsPerSentence),
		EstimatedReadingTime: EstimateReadingTimeSeconds(raw.WordCount),
		Score:                round4(score),
		ReadingEaseLabel:     readingEaseLabel(raw.FleschReadingEase),
		EducationLevel:       educationLevel(raw.DaleChallScore),
	}

	if audience != "" {
		adjusted, appropriate, issues, suggestions := audienceFit(score, raw.DaleChallScore, audience)
		adjustedRounded := round4(adjusted)
		result.AudienceAdjustedScore = &adjustedRounded
		result.AudienceAppropriate = &appropriate
		result.Issues = issues
		result.Suggestions = suggestions
	}

	a.cache.Put(result, key)
	return result
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
func round4(f float64) float64 { return math.Round(f*10000) / 10000 }
