package pivot

import "math"

// Size holds the dimension of a rectangle, be it the natural image size or the viewport size.
type Size struct {
	Width  float64
	Height float64
}

// Valid reports whether both sides of the rectangle are finite and strictly positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0 && isFinite(s.Width) && isFinite(s.Height)
}

// Scale returns the size multiplied by f on both axes.
func (s Size) Scale(f float64) Size {
	return Size{Width: s.Width * f, Height: s.Height * f}
}

// Point is a 2D coordinate.
type Point struct {
	X float64
	Y float64
}

// AngleOfVector returns the angle of the (x, y) vector in degrees, normalized to the [0, 360) range.
// The angle is measured from the positive x axis towards the positive y axis.
func AngleOfVector(x, y float64) float64 {
	return normalizeDegrees(math.Atan2(y, x) * 180 / math.Pi)
}

// WheelAngle converts a screen offset measured from the center of a rotation wheel
// into a wheel angle: straight up is 0° and the angle grows clockwise.
// Screen coordinates grow downward, hence the axis swap.
func WheelAngle(dx, dy float64) float64 {
	return AngleOfVector(-dy, dx)
}

// RotatePoint rotates p around the origin by rad radians.
func RotatePoint(p Point, rad float64) Point {
	sin, cos := math.Sincos(rad)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// RotatedSize returns the axis aligned bounding box of a w×h rectangle rotated by rad radians around the origin.
func RotatedSize(s Size, rad float64) Size {
	corners := [4]Point{{0, 0}, {s.Width, 0}, {s.Width, s.Height}, {0, s.Height}}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		p := RotatePoint(c, rad)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Size{Width: maxX - minX, Height: maxY - minY}
}

// round6 rounds x to 6 decimal places.
func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
