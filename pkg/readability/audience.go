package readability

import "math"

// gradeWindow is the [min_grade, max_grade] U.S. school-grade window an
// audience tag is considered appropriate for.
type gradeWindow struct {
	min, max float64
}

var audienceGradeLevels = map[string]gradeWindow{
	"children":     {1, 6},
	"teenagers":    {7, 12},
	"young_adults": {11, 14},
	"general":      {6, 12},
	"business":     {10, 14},
	"professional": {12, 16},
	"academic":     {14, 20},
}

// ValidAudience reports whether tag is one of the closed-set audience tags.
func ValidAudience(tag string) bool {
	if tag == "" {
		return true
	}
	_, ok := audienceGradeLevels[tag]
	return ok
}

// estimateGradeLevel approximates U.S. school grade from the Dale-Chall
// score via the classical step function.
func estimateGradeLevel(dc float64) float64 {
	switch {
	case dc <= 4.9:
		return 4
	case dc <= 5.9:
		return 6
	case dc <= 6.9:
		return 8
	case dc <= 7.9:
		return 10
	case dc <= 8.9:
		return 12
	case dc <= 9.9:
		return 14
	default:
		return 16
	}
}

// audienceFit compares the estimated grade level against the audience's
// window, returning appropriateness, an adjusted score, and any issues.
// Too-simple text is flagged but not penalized; too-complex text earns a
// proportional boost for professional/academic audiences and a proportional
// penalty otherwise; text inside the window always earns a proportional
// boost.
func audienceFit(score, dc float64, audience string) (adjusted float64, appropriate bool, issues, suggestions []string) {
	window, ok := audienceGradeLevels[audience]
	if !ok {
		return score, true, nil, nil
	}

	grade := estimateGradeLevel(dc)
	adjusted = score
	appropriate = true
	expert := audience == "professional" || audience == "academic"

	switch {
	case grade < window.min:
		appropriate = false
		if expert {
			issues = append(issues, "text may be too basic for the target academic/professional audience")
			suggestions = append(suggestions, "use more precise terminology and complex sentence structures")
		} else {
			issues = append(issues, "text may be too simple for the target audience")
			suggestions = append(suggestions, "use more sophisticated language and complex sentence structures")
		}
	case grade > window.max:
		if expert {
			issues = append(issues, "text uses appropriately complex language for an academic/professional audience")
			boost := math.Min(0.2, (grade-window.max)*0.03)
			adjusted = math.Min(1.0, score+boost)
		} else {
			appropriate = false
			if grade >= 14 {
				issues = append(issues, "text uses highly specialized language typically found in academic or expert-level content")
			} else {
				issues = append(issues, "too complex language for the target audience")
			}
			suggestions = append(suggestions, "simplify the language or provide additional explanations for technical terms")
			penalty := math.Min(0.3, (grade-window.max)*0.05)
			adjusted = math.Max(0.1, score-penalty)
		}
	default:
		boost := 0.2
		if expert && grade > window.min+2 {
			boost = 0.4
		}
		boost = math.Min(boost, (grade-window.min)*0.02)
		adjusted = math.Min(1.0, score+boost)
	}

	if expert && appropriate {
		issues = append(issues, "text complexity is well-matched for the target audience")
	}
	return
}
