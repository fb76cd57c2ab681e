package rewrite

import (
	"github.com/philokalos/promptlens/core/golden"
)

// Calibration constants. Tuned by example; treat the combination as the
// contract and adjust against labeled data, not from first principles.
const (
	calibrationBase        = 0.3
	perImprovedDimension   = 0.08
	perAntiPatternCleared  = 0.05
	maxAntiPatternBonus    = 0.15
	calibrationBaseCeiling = 0.75
	richnessCeilingBonus   = 0.2
)

// Calibrate turns a before/after score pair into the confidence
// reported on a rewrite variant. It rewards the number of dimensions
// that strictly improved and cleared anti-patterns; available session
// context raises the ceiling the value may reach.
func Calibrate(before, after golden.Score, antiPatternsCleared int, contextRichness float64) float64 {
	improved := golden.ImprovedDimensions(before, after)

	conf := calibrationBase + perImprovedDimension*float64(improved)

	if antiPatternsCleared > 0 {
		bonus := perAntiPatternCleared * float64(antiPatternsCleared)
		if bonus > maxAntiPatternBonus {
			bonus = maxAntiPatternBonus
		}
		conf += bonus
	}

	if contextRichness < 0 {
		contextRichness = 0
	}
	if contextRichness > 1 {
		contextRichness = 1
	}
	ceiling := calibrationBaseCeiling + richnessCeilingBonus*contextRichness

	if conf > ceiling {
		conf = ceiling
	}
	if conf < 0 {
		conf = 0
	}
	return conf
}
