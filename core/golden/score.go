// Package golden evaluates prompt quality against the six-dimension
// GOLDEN rubric: Goal, Output-format, Limits, Data/context,
// Evaluation-criteria, Next-steps. Evaluation is deterministic and does
// no I/O.
package golden

// Dimension names one axis of the GOLDEN rubric.
type Dimension string

const (
	DimensionGoal       Dimension = "goal"
	DimensionOutput     Dimension = "output"
	DimensionLimits     Dimension = "limits"
	DimensionData       Dimension = "data"
	DimensionEvaluation Dimension = "evaluation"
	DimensionNext       Dimension = "next"
)

// Dimensions lists the rubric axes in canonical order.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionGoal,
		DimensionOutput,
		DimensionLimits,
		DimensionData,
		DimensionEvaluation,
		DimensionNext,
	}
}

// Score holds the six dimension scores, each in [0,1]. The total is
// always recomputed from the dimensions and never stored separately.
type Score struct {
	Goal       float64 `json:"goal"`
	Output     float64 `json:"output"`
	Limits     float64 `json:"limits"`
	Data       float64 `json:"data"`
	Evaluation float64 `json:"evaluation"`
	Next       float64 `json:"next"`
}

// Total returns the mean of the six dimension scores.
func (s Score) Total() float64 {
	return (s.Goal + s.Output + s.Limits + s.Data + s.Evaluation + s.Next) / 6
}

// Get returns the score for a single dimension.
func (s Score) Get(d Dimension) float64 {
	switch d {
	case DimensionGoal:
		return s.Goal
	case DimensionOutput:
		return s.Output
	case DimensionLimits:
		return s.Limits
	case DimensionData:
		return s.Data
	case DimensionEvaluation:
		return s.Evaluation
	case DimensionNext:
		return s.Next
	}
	return 0
}

// ImprovedDimensions counts dimensions where after strictly exceeds
// before.
func ImprovedDimensions(before, after Score) int {
	improved := 0
	for _, d := range Dimensions() {
		if after.Get(d) > before.Get(d) {
			improved++
		}
	}
	return improved
}

// Grade is the letter grade derived from the overall score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Fixed grade thresholds.
const (
	ThresholdA = 0.8
	ThresholdB = 0.65
	ThresholdC = 0.5
	ThresholdD = 0.35
)

// GradeFor maps an overall score onto a letter grade. The mapping is
// pure and order preserving.
func GradeFor(overall float64) Grade {
	switch {
	case overall >= ThresholdA:
		return GradeA
	case overall >= ThresholdB:
		return GradeB
	case overall >= ThresholdC:
		return GradeC
	case overall >= ThresholdD:
		return GradeD
	default:
		return GradeF
	}
}
