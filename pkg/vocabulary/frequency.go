package vocabulary

import (
	_ "embed"
	"strconv"
	"strings"
	"sync"

	"textrefine/pkg/scoring"
)

//go:embed data/zipf_frequencies.txt
var embeddedFrequencies string

var (
	freqOnce  sync.Once
	freqTable map[string]float64
)

// frequencyTable loads the embedded Zipf frequency table lazily, shared
// read-only across requests.
func frequencyTable() map[string]float64 {
	freqOnce.Do(func() {
		freqTable = parseFrequencies(embeddedFrequencies)
	})
	return freqTable
}

func parseFrequencies(raw string) map[string]float64 {
	table := make(map[string]float64)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		z, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		table[fields[0]] = z
	}
	return table
}

// zipfScore returns the Zipf frequency for a lowercased word, or 0 when the
// word is unseen in the reference table.
func zipfScore(word string) float64 {
	return frequencyTable()[word]
}

// band classifies a Zipf frequency into one of the four sophistication
// bands and returns the band's scoring weight.
func band(zipf float64) (scoring.SophisticationBand, float64) {
	switch {
	case zipf >= 5.0:
		return scoring.BandCommon, 0.5
	case zipf >= 3.5:
		return scoring.BandMid, 1.0
	case zipf > 0:
		return scoring.BandRare, 1.5
	default:
		return scoring.BandUnknown, -0.2
	}
}
