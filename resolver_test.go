package pivot

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_FirstRenderCentersImage(t *testing.T) {
	natural := Size{Width: 2000, Height: 1000}
	viewport := Size{Width: 800, Height: 600}

	inst := Resolve(natural, viewport, nil, TransformState{Scale: 0.4, Anchor: CenterAnchor})

	assert.Equal(t, -600.0, inst.TranslateX)
	assert.Equal(t, -200.0, inst.TranslateY)
	assert.Equal(t, 0.0, inst.ScrollLeft)
	assert.Equal(t, 0.0, inst.ScrollTop)
	assert.InDelta(t, 800, inst.ContentWidth, epsilon)
	assert.InDelta(t, 400, inst.ContentHeight, epsilon)
	assert.True(t, inst.Fitted)

	// The image center is displayed in the viewport center.
	c := inst.ImageToViewport(natural, Point{X: 1000, Y: 500})
	assert.InDelta(t, 400, c.X, epsilon)
	assert.InDelta(t, 300, c.Y, epsilon)
}

func TestResolver_FitThenZoomToPoint(t *testing.T) {
	natural := Size{Width: 2000, Height: 1000}
	viewport := Size{Width: 800, Height: 600}

	fitted := Resolve(natural, viewport, nil, TransformState{Scale: 0.4, Anchor: CenterAnchor})
	anchor := Point{X: 200, Y: 150}
	p := fitted.ViewportToImage(natural, anchor)

	// The image is letterboxed vertically, the clicked pixel is 25% into the width.
	assert.InDelta(t, 500, p.X, epsilon)
	assert.InDelta(t, 125, p.Y, epsilon)

	zoomed := Resolve(natural, viewport, &fitted, TransformState{Scale: 1, Anchor: NewAnchor(0.25, 0.25)})
	assert.False(t, zoomed.Fitted)
	assert.InDelta(t, 300, zoomed.ScrollLeft, epsilon)
	assert.InDelta(t, -25, zoomed.ScrollTop, epsilon)

	q := zoomed.ImageToViewport(natural, p)
	assert.InDelta(t, anchor.X, q.X, epsilon)
	assert.InDelta(t, anchor.Y, q.Y, epsilon)
}

func TestResolver_AnchorInvariance(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	natural := Size{Width: 1600, Height: 900}
	viewport := Size{Width: 1024, Height: 768}

	for i := 0; i < 500; i++ {
		prev := Resolve(natural, viewport, nil, TransformState{
			Scale:    0.1 + rnd.Float64()*3.9,
			Rotation: rnd.Float64() * 360,
			Anchor:   CenterAnchor,
		})
		// Any previous scroll offset, including the unreachable ones.
		prev.ScrollLeft += (rnd.Float64() - 0.5) * 2000
		prev.ScrollTop += (rnd.Float64() - 0.5) * 2000

		state := TransformState{
			Scale:    0.1 + rnd.Float64()*3.9,
			Rotation: rnd.Float64() * 360,
			Anchor:   NewAnchor(rnd.Float64(), rnd.Float64()),
		}
		v := Point{X: viewport.Width * state.Anchor.X, Y: viewport.Height * state.Anchor.Y}
		p := prev.ViewportToImage(natural, v)

		next := Resolve(natural, viewport, &prev, state)
		q := next.ImageToViewport(natural, p)

		assert.InDelta(t, v.X, q.X, 1e-6, "case %d: anchor moved horizontally", i)
		assert.InDelta(t, v.Y, q.Y, 1e-6, "case %d: anchor moved vertically", i)
	}
}

func TestResolver_RotationSwapsContent(t *testing.T) {
	natural := Size{Width: 400, Height: 200}
	viewport := Size{Width: 300, Height: 300}

	inst := Resolve(natural, viewport, nil, TransformState{Scale: 1, Rotation: 90, Anchor: CenterAnchor})
	assert.InDelta(t, 200, inst.ContentWidth, epsilon)
	assert.InDelta(t, 400, inst.ContentHeight, epsilon)
	assert.InDelta(t, 90, inst.Degrees(), epsilon)
	assert.InDelta(t, math.Pi/2, inst.Rotation, epsilon)
	assert.False(t, inst.Fitted)
}

func TestResolver_DegeneratedPreviousScale(t *testing.T) {
	natural := Size{Width: 400, Height: 200}
	viewport := Size{Width: 200, Height: 200}

	for name, prev := range map[string]RenderInstruction{
		"zero scale":         {},
		"nan scroll":         {Scale: 1, ScrollLeft: math.NaN()},
		"infinite scale":     {Scale: math.Inf(1)},
		"infinite translate": {Scale: 1, TranslateY: math.Inf(-1)},
	} {
		t.Run(name, func(t *testing.T) {
			inst := Resolve(natural, viewport, &prev, TransformState{Scale: 1, Anchor: NewAnchor(0, 0)})

			// Without a usable previous transform the image center is kept at the anchor.
			c := inst.ImageToViewport(natural, Point{X: 200, Y: 100})
			assert.InDelta(t, 0, c.X, epsilon)
			assert.InDelta(t, 0, c.Y, epsilon)
		})
	}
}

func TestResolver_ClampScroll(t *testing.T) {
	viewport := Size{Width: 800, Height: 600}
	inst := RenderInstruction{ContentWidth: 2000, ContentHeight: 500, ScrollLeft: -10, ScrollTop: 50}

	assert.Equal(t, Size{Width: 1200, Height: 0}, inst.ScrollRange(viewport))

	c := inst.ClampScroll(viewport)
	assert.Equal(t, 0.0, c.ScrollLeft)
	assert.Equal(t, 0.0, c.ScrollTop)

	inst.ScrollLeft = 5000
	assert.Equal(t, 1200.0, inst.ClampScroll(viewport).ScrollLeft)
}
