// Package vocabulary implements the Vocabulary analyzer: three independent
// sub-scorers (diversity, sophistication, precision) combined with fixed
// weights, cross-linked against the Correctness analyzer's issue list.
package vocabulary

import (
	"context"

	"go.opentelemetry.io/otel"

	"textrefine/pkg/cache"
	"textrefine/pkg/scoring"
)

const resultCacheSize = 128

var tracer = otel.Tracer("textrefine/vocabulary")

// Analyzer produces VocabularyResults. It depends on the Correctness
// analyzer's issue list, which the pipeline hands it once Correctness
// completes (see pkg/pipeline) — a one-shot handoff, not shared state.
type Analyzer struct {
	variant Variant
	cache   *cache.Result[scoring.VocabularyResult]
}

// Option configures an Analyzer at construction.
type Option func(*Analyzer)

// WithSigmoidVariant selects the sigmoid composite formula instead of the
// default linear one.
func WithSigmoidVariant() Option {
	return func(a *Analyzer) { a.variant = VariantSigmoid }
}

// New builds a Vocabulary analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		variant: VariantLinear,
		cache:   cache.NewResult[scoring.VocabularyResult](resultCacheSize),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes the composite VocabularyResult for text, given the
// correctness issues already produced for the same text.
func (a *Analyzer) Analyze(ctx context.Context, text string, correctnessIssues []scoring.TextIssue) scoring.VocabularyResult {
	_, span := tracer.Start(ctx, "vocabulary.analyze")
	defer span.End()

	if cached, ok := a.cache.Get(text); ok {
		return cached
	}

	diversity := Diversity(text)
	sophistication := Sophistication(text, correctnessIssues, a.variant)
	precision := Precision(text, correctnessIssues)

	result := scoring.NewVocabularyResult(diversity, sophistication, precision)
	a.cache.Put(result, text)
	return result
}
