// Package correctness implements the Correctness analyzer: a call to the
// external grammar/style engine, normalized into a scoring.CorrectnessResult
// via a sigmoid of the per-word penalty.
package correctness

import (
	"context"

	"go.opentelemetry.io/otel"

	"textrefine/pkg/cache"
	"textrefine/pkg/grammar"
	"textrefine/pkg/scoring"
	"textrefine/pkg/tokenize"
)

// resultCacheSize bounds the analyzer's memoization layer.
const resultCacheSize = 128

var tracer = otel.Tracer("textrefine/correctness")

// Analyzer produces CorrectnessResults for input text.
type Analyzer struct {
	client *grammar.Client
	cache  *cache.Result[scoring.CorrectnessResult]
}

// New builds a Correctness analyzer backed by the given grammar engine
// client (itself a process-wide singleton; see pkg/grammar).
func New(client *grammar.Client) *Analyzer {
	return &Analyzer{
		client: client,
		cache:  cache.NewResult[scoring.CorrectnessResult](resultCacheSize),
	}
}

// Analyze returns the CorrectnessResult for text, short-circuiting on the
// analyzer's own result cache before falling through to the grammar client
// (which has its own, larger, independent cache).
func (a *Analyzer) Analyze(ctx context.Context, text string) (scoring.CorrectnessResult, error) {
	ctx, span := tracer.Start(ctx, "correctness.analyze")
	defer span.End()

	if cached, ok := a.cache.Get(text); ok {
		return cached, nil
	}

	issues, err := a.client.Check(ctx, text)
	if err != nil {
		return scoring.CorrectnessResult{}, err
	}

	result := scoring.NewCorrectnessResult(tokenize.WhitespaceWordCount(text), issues)
	a.cache.Put(result, text)
	return result, nil
}
