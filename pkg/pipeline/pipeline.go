// Package pipeline implements the Aggregator and orchestration that ties
// the four analyzers into a single request-scoped evaluation. Correctness,
// Readability, and Coherence run concurrently; Vocabulary is launched only
// once Correctness's one-shot handoff completes.
package pipeline

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"textrefine/pkg/correctness"
	"textrefine/pkg/readability"
	"textrefine/pkg/scoring"
	"textrefine/pkg/tokenize"
	"textrefine/pkg/vocabulary"
)

// MinWordCount is the pipeline-enforced minimum input size before any
// analyzer is invoked.
const MinWordCount = 20

var tracer = otel.Tracer("textrefine/pipeline")

// CoherenceAnalyzer is the subset of *coherence.Analyzer the pipeline
// depends on. Defined here so tests can exercise real-failure propagation
// with a fake, without driving an actual Gemini call.
type CoherenceAnalyzer interface {
	Analyze(ctx context.Context, text, topic string) (scoring.CoherenceResult, error)
}

// Pipeline wires the analyzers together. Coherence is optional: a nil
// coherence analyzer means the process has no LLM credential configured,
// and every evaluation reports coherence as absent.
type Pipeline struct {
	correctness *correctness.Analyzer
	vocabulary  *vocabulary.Analyzer
	readability *readability.Analyzer
	coherence   CoherenceAnalyzer
	log         *zap.Logger
}

// New builds a Pipeline from already-constructed analyzers. coh may be nil
// (an untyped nil CoherenceAnalyzer, not a nil pointer boxed in the
// interface) to mean no LLM credential is configured.
func New(corr *correctness.Analyzer, voc *vocabulary.Analyzer, read *readability.Analyzer, coh CoherenceAnalyzer, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		correctness: corr,
		vocabulary:  voc,
		readability: read,
		coherence:   coh,
		log:         log,
	}
}

// Request is a single evaluation request.
type Request struct {
	Text     string
	Topic    string
	Audience string
}

// Evaluate runs the full pipeline for one request, returning the aggregated
// GlobalScore or the first analyzer-local failure encountered.
func (p *Pipeline) Evaluate(ctx context.Context, req Request) (scoring.GlobalScore, error) {
	ctx, span := tracer.Start(ctx, "pipeline.evaluate")
	defer span.End()

	if tokenize.WhitespaceWordCount(req.Text) < MinWordCount {
		return scoring.GlobalScore{}, scoring.ErrInputTooShort
	}
	if req.Audience != "" && !readability.ValidAudience(req.Audience) {
		return scoring.GlobalScore{}, scoring.ErrInvalidAudience
	}

	g, gctx := errgroup.WithContext(ctx)

	var correctnessResult scoring.CorrectnessResult
	var vocabResult scoring.VocabularyResult
	var readabilityResult scoring.ReadabilityResult
	var coherenceResult *scoring.CoherenceResult

	g.Go(func() error {
		r, err := p.correctness.Analyze(gctx, req.Text)
		if err != nil {
			return err
		}
		correctnessResult = r
		// Vocabulary's one-shot handoff: it starts as soon as Correctness's
		// issue list is final and immutable, without waiting for Readability
		// or Coherence.
		vocabResult = p.vocabulary.Analyze(gctx, req.Text, r.Issues)
		return nil
	})

	g.Go(func() error {
		readabilityResult = p.readability.Analyze(gctx, req.Text, req.Audience)
		return nil
	})

	if p.coherence != nil {
		g.Go(func() error {
			r, err := p.coherence.Analyze(gctx, req.Text, req.Topic)
			if err != nil {
				// Only the absence of a credential at startup (p.coherence
				// == nil, handled above) is a silent skip. A failure during
				// an actual call is request-fatal like any other
				// analyzer-local failure.
				return err
			}
			coherenceResult = &r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return scoring.GlobalScore{}, err
	}

	return scoring.Aggregate(correctnessResult, vocabResult, readabilityResult, coherenceResult), nil
}
