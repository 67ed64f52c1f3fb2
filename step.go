package pivot

import (
	"math"

	"github.com/esimov/pivot/utils"
)

// Scale limits and the zoom step used when no other limits are configured.
const (
	ScaleMin  = 0.1
	ScaleMax  = 4.0
	ScaleStep = 0.1
)

// Limits bounds the scale values produced by the zoom operations.
type Limits struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultLimits returns the default scale limits.
func DefaultLimits() Limits {
	return Limits{Min: ScaleMin, Max: ScaleMax, Step: ScaleStep}
}

// Clamp restricts s to the [Min, Max] range.
func (l Limits) Clamp(s float64) float64 {
	return utils.Clamp(s, l.Min, l.Max)
}

// StepScale moves scale by the given number of steps on the l.Step grid.
// Zooming out rounds the current position up to the grid and zooming in rounds it down,
// so a step never skips the nearest grid line in the requested direction.
func (l Limits) StepScale(scale float64, steps int) float64 {
	if l.Step <= 0 {
		return l.Clamp(scale)
	}
	q := round6(scale / l.Step)
	if steps < 0 {
		q = math.Ceil(q)
	} else {
		q = math.Floor(q)
	}
	return l.Clamp(round6((q + float64(steps)) * l.Step))
}

// StepScale is the package level shorthand of Limits.StepScale using the default scale range.
func StepScale(scale float64, steps int, stepSize float64) float64 {
	l := DefaultLimits()
	l.Step = stepSize
	return l.StepScale(scale, steps)
}
