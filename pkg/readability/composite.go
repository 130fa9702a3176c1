package readability

import "math"

const (
	weightFRE = 0.6
	weightDC  = 0.2
	weightSL  = 0.2
)

func normalizeFRE(fre float64) float64 {
	return fre / 100.0
}

func normalizeDC(dc float64) float64 {
	return 1 - (math.Max(0, dc-4.9) / (10 - 4.9))
}

func normalizeSentenceLength(avg float64) float64 {
	var val float64
	switch {
	case avg <= 15:
		return 1.0
	case avg <= 25:
		val = 1.0 - 0.1*(avg-15)
	default:
		val = (1.0 - 0.1*10) - 0.05*(avg-25)
	}
	return math.Max(0.1, val)
}

// compositeScore combines the three normalized metrics, applying an extra
// difficulty penalty when the Flesch score drops below 30.
func compositeScore(fre, dc, avgWordsPerSentence float64) float64 {
	freN := normalizeFRE(fre)
	dcN := normalizeDC(dc)
	slN := normalizeSentenceLength(avgWordsPerSentence)

	base := math.Min(1, 1.2*(weightFRE*freN+weightDC*dcN+weightSL*slN))

	if fre < 30 {
		penalty := 0.2 * (1 - fre/30)
		base -= penalty
	}
	return math.Max(0.1, base)
}

// readingEaseLabel gives a human-readable band for the Flesch score,
// matching the traditional Flesch interpretation scale.
func readingEaseLabel(fre float64) string {
	switch {
	case fre >= 90:
		return "very easy"
	case fre >= 70:
		return "easy"
	case fre >= 60:
		return "standard"
	case fre >= 50:
		return "fairly difficult"
	case fre >= 30:
		return "difficult"
	default:
		return "very confusing"
	}
}

// educationLevel derives a coarse label from the estimated grade level.
func educationLevel(dc float64) string {
	grade := estimateGradeLevel(dc)
	switch {
	case grade <= 5:
		return "elementary"
	case grade <= 8:
		return "middle school"
	case grade <= 12:
		return "high school"
	case grade <= 14:
		return "college"
	default:
		return "college graduate"
	}
}
