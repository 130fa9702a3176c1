package vocabulary

import (
	"testing"

	"textrefine/pkg/scoring"
)

func TestDiversityInvariant(t *testing.T) {
	d := Diversity("the quick brown fox jumps over the lazy dog the fox runs")
	if d.UniqueCount > d.WordCount {
		t.Errorf("unique_count %d > word_count %d", d.UniqueCount, d.WordCount)
	}
	if d.TTR < 0 || d.TTR > 1 {
		t.Errorf("ttr out of range: %v", d.TTR)
	}
}

func TestDiversityEmptyText(t *testing.T) {
	d := Diversity("")
	if d.TTR != 0 || d.WordCount != 0 {
		t.Errorf("expected zero-filled result for empty text, got %+v", d)
	}
}

func TestSophisticationBandCountInvariant(t *testing.T) {
	text := "quantum computing requires meticulous theoretical synthesis of algorithmic paradigms"
	result := Sophistication(text, nil, VariantLinear)
	total := result.CommonCount + result.MidCount + result.RareCount + result.UnknownCount
	if total != result.WordCount {
		t.Errorf("band counts sum to %d, want word_count %d", total, result.WordCount)
	}
}

func TestSophisticationCrossLinksReplacements(t *testing.T) {
	text := "quantums computinng are fascinating fields of study"
	issues := []scoring.TextIssue{
		{StartOffset: 0, Length: 8, Replacements: []string{"quantum"}},
		{StartOffset: 9, Length: 10, Replacements: []string{"computing"}},
	}
	result := Sophistication(text, issues, VariantLinear)
	if result.UnknownCount != 0 {
		t.Errorf("unknown_count = %d, want 0 once typos are replaced with known words", result.UnknownCount)
		t.Logf("breakdown: %+v", result.Breakdown)
	}
}

func TestPrecisionFiltersToRelevantCategories(t *testing.T) {
	text := "a short sentence with some words in it for testing"
	issues := []scoring.TextIssue{
		{Category: scoring.CategoryWordUsage},
		{Category: scoring.CategoryGrammarRules}, // not precision-relevant
	}
	p := Precision(text, issues)
	if len(p.Issues) != 1 {
		t.Errorf("expected 1 precision-relevant issue, got %d", len(p.Issues))
	}
}

func TestNewVocabularyResultWeights(t *testing.T) {
	d := scoring.LexicalDiversityResult{TTR: 1.0}
	s := scoring.SophisticationResult{Score: 1.0}
	p := scoring.PrecisionResult{Score: 1.0}
	r := scoring.NewVocabularyResult(d, s, p)
	if r.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0 when all sub-scores are perfect", r.Score)
	}
}
