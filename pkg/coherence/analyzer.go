// Package coherence implements the Coherence analyzer: a prompt-engineered
// Gemini call returning a schema-validated CoherenceResult. It is the one
// analyzer that is entirely optional, skipped when no API credential is
// configured at startup.
package coherence

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"textrefine/pkg/cache"
	"textrefine/pkg/scoring"
	"textrefine/pkg/scoring/schema"
)

// DefaultTimeout is the wall-clock timeout for a single LLM call.
const DefaultTimeout = 30 * time.Second

const resultCacheSize = 128

var tracer = otel.Tracer("textrefine/coherence")

var resultSchema = schema.Of(reflect.TypeOf(scoring.CoherenceResult{}))

const systemPrompt = `You are a writing coherence evaluator. Score the given text's logical flow,
organization, and clarity as "text_coherence" in [0,1]. If a topic is provided, also score how
well the text addresses that topic as "topic_coherence" in [0,1]; otherwise omit topic_coherence.

Scoring rule you must self-enforce:
- If no topic was given: score = text_coherence.
- If a topic was given: score = 0.3*text_coherence + 0.7*topic_coherence.

Never comment on grammar, spelling, or word choice — those are scored elsewhere. Focus only on
logical structure, transitions, and (when a topic is given) topical relevance. Provide brief
"feedback", at most three "suggestions", and a "confidence" in [0,1] reflecting how certain you
are of this judgment; confidence is advisory and must never be treated as a stable score across
model versions.

Respond with JSON matching the provided schema exactly.`

// Analyzer produces CoherenceResults via Gemini. A nil Analyzer (constructed
// with no API key) means coherence is skipped for the whole process.
type Analyzer struct {
	client *genai.Client
	model  string
	cache  *cache.Result[scoring.CoherenceResult]
	log    *zap.Logger
}

// New constructs a Coherence analyzer. Returns (nil, nil) when apiKey is
// empty, signaling the caller to skip coherence entirely rather than
// erroring: the credential is optional.
func New(ctx context.Context, apiKey, model string, log *zap.Logger) (*Analyzer, error) {
	if apiKey == "" {
		return nil, nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("coherence: failed to build genai client: %w", err)
	}
	return &Analyzer{
		client: client,
		model:  model,
		cache:  cache.NewResult[scoring.CoherenceResult](resultCacheSize),
		log:    log,
	}, nil
}

// Analyze calls Gemini with the fixed system prompt and the schema derived
// from scoring.CoherenceResult, validating and returning the parsed result.
func (a *Analyzer) Analyze(ctx context.Context, text, topic string) (scoring.CoherenceResult, error) {
	ctx, span := tracer.Start(ctx, "coherence.analyze")
	defer span.End()

	if cached, ok := a.cache.Get(text, topic); ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	prompt := fmt.Sprintf("Text:\n%s\n", text)
	if topic != "" {
		prompt += fmt.Sprintf("\nTopic: %s\n", topic)
	}

	contents := []*genai.Content{
		{Parts: []*genai.Part{genai.NewPartFromText(prompt)}},
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(systemPrompt)}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    resultSchema,
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		a.log.Warn("coherence: upstream model error", zap.Error(err))
		return scoring.CoherenceResult{}, fmt.Errorf("%w: %v", scoring.ErrInternalFailure, err)
	}

	var result scoring.CoherenceResult
	if err := json.Unmarshal([]byte(resp.Text()), &result); err != nil {
		return scoring.CoherenceResult{}, fmt.Errorf("%w: parsing coherence response: %v", scoring.ErrInternalFailure, err)
	}
	if err := validate(result); err != nil {
		return scoring.CoherenceResult{}, fmt.Errorf("%w: %v", scoring.ErrInternalFailure, err)
	}

	result = enforceScoringRule(result, topic != "")

	a.cache.Put(result, text, topic)
	return result, nil
}

// validate rejects model output whose scores escaped the schema's [0,1]
// bounds.
func validate(r scoring.CoherenceResult) error {
	inUnit := func(v float64) bool { return v >= 0 && v <= 1 }
	if !inUnit(r.TextCoherence) {
		return fmt.Errorf("text_coherence %v out of [0,1]", r.TextCoherence)
	}
	if r.TopicCoherence != nil && !inUnit(*r.TopicCoherence) {
		return fmt.Errorf("topic_coherence %v out of [0,1]", *r.TopicCoherence)
	}
	if !inUnit(r.Confidence) {
		return fmt.Errorf("confidence %v out of [0,1]", r.Confidence)
	}
	return nil
}

// enforceScoringRule recomputes Score from the model's reported
// text/topic coherence per the fixed formula, rather than trusting the
// model to have self-enforced it exactly.
func enforceScoringRule(r scoring.CoherenceResult, hasTopic bool) scoring.CoherenceResult {
	if !hasTopic || r.TopicCoherence == nil {
		r.Score = r.TextCoherence
		r.TopicCoherence = nil
		return r
	}
	r.Score = 0.3*r.TextCoherence + 0.7*(*r.TopicCoherence)
	return r
}
