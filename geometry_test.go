package pivot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func TestGeometry_RotatedSize(t *testing.T) {
	size := Size{Width: 400, Height: 200}

	assert.Equal(t, size, RotatedSize(size, 0))

	full := RotatedSize(size, 2*math.Pi)
	assert.InDelta(t, size.Width, full.Width, epsilon)
	assert.InDelta(t, size.Height, full.Height, epsilon)

	quarter := RotatedSize(size, math.Pi/2)
	assert.InDelta(t, 200, quarter.Width, epsilon)
	assert.InDelta(t, 400, quarter.Height, epsilon)

	// A square rotated by 45° spans its diagonal on both axes.
	diag := RotatedSize(Size{Width: 100, Height: 100}, math.Pi/4)
	assert.InDelta(t, 100*math.Sqrt2, diag.Width, epsilon)
	assert.InDelta(t, 100*math.Sqrt2, diag.Height, epsilon)
}

func TestGeometry_RotatePoint(t *testing.T) {
	// Clockwise on the screen, since the y axis points downward.
	p := RotatePoint(Point{X: 10, Y: 0}, math.Pi/2)
	assert.InDelta(t, 0, p.X, epsilon)
	assert.InDelta(t, 10, p.Y, epsilon)

	back := RotatePoint(p, -math.Pi/2)
	assert.InDelta(t, 10, back.X, epsilon)
	assert.InDelta(t, 0, back.Y, epsilon)
}

func TestGeometry_WheelAngle(t *testing.T) {
	testCases := []struct {
		name   string
		dx, dy float64
		want   float64
	}{
		{"up", 0, -100, 0},
		{"right", 100, 0, 90},
		{"down", 0, 100, 180},
		{"left", -100, 0, 270},
		{"up-right", 50, -50, 45},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, WheelAngle(tc.dx, tc.dy), epsilon)
		})
	}
}

func TestGeometry_AngleOfVector(t *testing.T) {
	assert.InDelta(t, 0, AngleOfVector(1, 0), epsilon)
	assert.InDelta(t, 90, AngleOfVector(0, 1), epsilon)
	assert.InDelta(t, 270, AngleOfVector(0, -1), epsilon)
	assert.InDelta(t, 180, AngleOfVector(-1, 0), epsilon)
}

func TestGeometry_SizeValid(t *testing.T) {
	assert.True(t, Size{Width: 1, Height: 1}.Valid())
	assert.False(t, Size{Width: 0, Height: 1}.Valid())
	assert.False(t, Size{Width: 1, Height: -1}.Valid())
	assert.False(t, Size{Width: math.NaN(), Height: 1}.Valid())
	assert.False(t, Size{Width: 1, Height: math.Inf(1)}.Valid())
}
