package readability

import (
	"context"
	"math"
	"testing"
)

const sampleText = "The cat sat on the mat. It was a sunny day and the birds were singing. " +
	"Everyone in the small town felt happy and calm. The children played in the park " +
	"until the sun went down behind the hills."

func TestAnalyzeScoreBounds(t *testing.T) {
	a := New()
	r := a.Analyze(context.Background(), sampleText, "")
	if r.Score < 0 || r.Score > 1 {
		t.Errorf("score out of [0,1]: %v", r.Score)
	}
	if r.FleschReadingEase < 0 || r.FleschReadingEase > 100 {
		t.Errorf("flesch reading ease out of [0,100]: %v", r.FleschReadingEase)
	}
	if r.DaleChallScore < 0 || r.DaleChallScore > 10 {
		t.Errorf("dale chall score out of [0,10]: %v", r.DaleChallScore)
	}
}

func TestAudienceTooComplexPenalizes(t *testing.T) {
	// Short, readable words that are nonetheless outside the easy-word
	// list, so the Flesch score stays high while Dale-Chall grades the
	// text well above a children's window.
	dense := "The audit revealed a gap between the stated profit and the actual margin. " +
		"The board must review the tariff, the lease, and the merger before the next fiscal quarter. " +
		"A fraud probe could damage the firm's stock."
	a := New()
	r := a.Analyze(context.Background(), dense, "children")
	if r.AudienceAppropriate == nil || *r.AudienceAppropriate {
		t.Fatalf("expected dense text to be inappropriate for children audience, got %+v", r.AudienceAppropriate)
	}
	if r.AudienceAdjustedScore == nil || *r.AudienceAdjustedScore >= r.Score {
		t.Errorf("expected audience_adjusted_score < score for mismatch, got adjusted=%v score=%v", r.AudienceAdjustedScore, r.Score)
	}
	if len(r.Issues) == 0 {
		t.Error("expected a complexity issue to be reported")
	}
}

func TestAudienceTooSimpleFlagsWithoutPenalty(t *testing.T) {
	a := New()
	r := a.Analyze(context.Background(), sampleText, "academic")
	if r.AudienceAppropriate == nil || *r.AudienceAppropriate {
		t.Fatalf("expected simple prose to be flagged for an academic audience, got %+v", r.AudienceAppropriate)
	}
	if r.AudienceAdjustedScore == nil || *r.AudienceAdjustedScore != r.Score {
		t.Errorf("too-simple text must not be penalized, got adjusted=%v score=%v", r.AudienceAdjustedScore, r.Score)
	}
	if len(r.Issues) == 0 {
		t.Error("expected a too-basic issue to be reported")
	}
}

func TestAudienceFitInRangeBoost(t *testing.T) {
	// Grade 4 text inside the children window earns the proportional
	// boost min(0.2, (grade-min)*0.02).
	adjusted, appropriate, _, _ := audienceFit(0.5, 0.5, "children")
	if !appropriate {
		t.Error("grade-4 text should be appropriate for children")
	}
	if want := 0.5 + 0.06; math.Abs(adjusted-want) > 1e-9 {
		t.Errorf("adjusted = %v, want %v", adjusted, want)
	}
}

func TestAudienceFitExpertInRangeBoost(t *testing.T) {
	// Grade 16 is above professional's min+2, so the boost cap rises to
	// 0.4 before the per-grade scaling clamps it to (16-12)*0.02.
	adjusted, appropriate, issues, _ := audienceFit(0.5, 10.0, "professional")
	if !appropriate {
		t.Error("grade-16 text should be appropriate for a professional audience")
	}
	if want := 0.5 + 0.08; math.Abs(adjusted-want) > 1e-9 {
		t.Errorf("adjusted = %v, want %v", adjusted, want)
	}
	if len(issues) == 0 {
		t.Error("expected a well-matched note for a professional audience")
	}
}

func TestCompositeFormula(t *testing.T) {
	score := compositeScore(70, 6, 12)
	if score <= 0 || score > 1 {
		t.Errorf("compositeScore() = %v, want in (0,1]", score)
	}
}

func TestNormalizeSentenceLengthFloor(t *testing.T) {
	if got := normalizeSentenceLength(100); got < 0.1 {
		t.Errorf("normalizeSentenceLength(100) = %v, want floored at 0.1", got)
	}
	if got := normalizeSentenceLength(10); got != 1.0 {
		t.Errorf("normalizeSentenceLength(10) = %v, want 1.0", got)
	}
}
