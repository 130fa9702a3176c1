package vocabulary

import "math"

func round4Local(f float64) float64 {
	return math.Round(f*10000) / 10000
}
