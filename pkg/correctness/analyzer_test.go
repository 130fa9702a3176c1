package correctness

import (
	"testing"

	"textrefine/pkg/scoring"
)

func TestNewCorrectnessResultNoIssues(t *testing.T) {
	r := scoring.NewCorrectnessResult(60, nil)
	if r.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0 for zero issues", r.Score)
	}
	if len(r.Issues) != 0 {
		t.Errorf("Issues = %v, want empty", r.Issues)
	}
}

func TestNewCorrectnessResultMonotonicInIssueCount(t *testing.T) {
	base := []scoring.TextIssue{{Category: scoring.CategoryGrammarRules, StartOffset: 0, Length: 3}}
	more := append(append([]scoring.TextIssue{}, base...), scoring.TextIssue{Category: scoring.CategoryGrammarRules, StartOffset: 10, Length: 3})

	r1 := scoring.NewCorrectnessResult(60, base)
	r2 := scoring.NewCorrectnessResult(60, more)
	if r2.Score > r1.Score {
		t.Errorf("adding an issue at equal word count increased score: %v -> %v", r1.Score, r2.Score)
	}
}

func TestNewCorrectnessResultMonotonicInWordCount(t *testing.T) {
	issues := []scoring.TextIssue{{Category: scoring.CategoryMeaningLogic, StartOffset: 0, Length: 3}}
	rShort := scoring.NewCorrectnessResult(20, issues)
	rLong := scoring.NewCorrectnessResult(200, issues)
	if rLong.Score < rShort.Score {
		t.Errorf("increasing word count decreased score: %v -> %v", rShort.Score, rLong.Score)
	}
}

func TestBreakdownCountsSumToIssueCount(t *testing.T) {
	issues := []scoring.TextIssue{
		{Category: scoring.CategoryGrammarRules},
		{Category: scoring.CategoryGrammarRules},
		{Category: scoring.CategorySpellingTyping},
	}
	r := scoring.NewCorrectnessResult(50, issues)
	total := 0
	for _, b := range r.Breakdown {
		total += b.Count
	}
	if total != len(issues) {
		t.Errorf("breakdown total count = %d, want %d", total, len(issues))
	}
}
