package pivot

import "math"

// Anchor is a normalized (0..1) viewport position which has to remain visually
// stationary while the transformation changes.
type Anchor struct {
	X float64
	Y float64
}

// CenterAnchor is the center of the viewport.
var CenterAnchor = Anchor{X: 0.5, Y: 0.5}

// NewAnchor returns an anchor with both fractions clamped to [0, 1].
// A drag gesture can report values outside of the viewport during overscroll.
func NewAnchor(fx, fy float64) Anchor {
	return Anchor{X: clampFraction(fx), Y: clampFraction(fy)}
}

// IsCenter reports whether the anchor is the viewport center.
func (a Anchor) IsCenter() bool {
	return a == CenterAnchor
}

// TransformState is the mutable model of the viewer: the image scale,
// the rotation expressed in degrees and the anchor of the next recompute.
type TransformState struct {
	Scale    float64
	Rotation float64
	Anchor   Anchor
}

// DisplayRotation returns the rotation as a signed angle in the (-180, 180] range.
// It is meant only for displaying the value, the transform always uses Rotation.
func (s TransformState) DisplayRotation() float64 {
	if s.Rotation > 180 {
		return s.Rotation - 360
	}
	return s.Rotation
}

// normalizeDegrees wraps deg into the [0, 360) range.
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// math.Mod of a tiny negative value plus 360 can round up to 360.
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func clampFraction(f float64) float64 {
	if math.IsNaN(f) {
		return 0.5
	}
	return math.Max(0, math.Min(1, f))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
