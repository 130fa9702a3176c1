package coherence

import (
	"context"
	"math"
	"testing"

	"textrefine/pkg/scoring"
)

func TestNewWithoutCredentialSkips(t *testing.T) {
	a, err := New(context.Background(), "", "gemini-2.0-flash-lite", nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if a != nil {
		t.Fatal("New() with empty API key should return a nil analyzer")
	}
}

func TestEnforceScoringRuleNoTopic(t *testing.T) {
	tc := 0.8
	r := enforceScoringRule(scoring.CoherenceResult{
		TextCoherence:  0.7,
		TopicCoherence: &tc, // model hallucinated a topic score
		Score:          0.5, // and a bogus composite
	}, false)

	if r.Score != 0.7 {
		t.Errorf("Score = %v, want text_coherence 0.7 when no topic given", r.Score)
	}
	if r.TopicCoherence != nil {
		t.Errorf("TopicCoherence = %v, want nil when no topic given", *r.TopicCoherence)
	}
}

func TestEnforceScoringRuleWithTopic(t *testing.T) {
	tc := 0.9
	r := enforceScoringRule(scoring.CoherenceResult{
		TextCoherence:  0.6,
		TopicCoherence: &tc,
		Score:          0.1,
	}, true)

	want := 0.3*0.6 + 0.7*0.9
	if math.Abs(r.Score-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", r.Score, want)
	}
}

func TestValidateRejectsOutOfRangeScores(t *testing.T) {
	if err := validate(scoring.CoherenceResult{TextCoherence: 1.4, Confidence: 0.5}); err == nil {
		t.Error("validate() accepted text_coherence > 1")
	}
	tc := -0.1
	if err := validate(scoring.CoherenceResult{TextCoherence: 0.5, TopicCoherence: &tc, Confidence: 0.5}); err == nil {
		t.Error("validate() accepted negative topic_coherence")
	}
	if err := validate(scoring.CoherenceResult{TextCoherence: 0.5, Confidence: 0.5}); err != nil {
		t.Errorf("validate() rejected an in-range result: %v", err)
	}
}

func TestEnforceScoringRuleTopicGivenButModelOmittedIt(t *testing.T) {
	r := enforceScoringRule(scoring.CoherenceResult{
		TextCoherence: 0.75,
		Score:         0.2,
	}, true)

	if r.Score != 0.75 {
		t.Errorf("Score = %v, want fallback to text_coherence when topic_coherence is missing", r.Score)
	}
}
