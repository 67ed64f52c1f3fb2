package pivot

import "math"

// RenderInstruction is the outcome of a transform recompute. The host applies it as a
// paint transform (translate, rotate, scale in this order, around the natural image center)
// followed by a scroll of the viewport.
type RenderInstruction struct {
	TranslateX float64
	TranslateY float64
	Rotation   float64 // radians
	Scale      float64
	ScrollLeft float64
	ScrollTop  float64

	// ContentWidth and ContentHeight hold the rotated and scaled image footprint.
	ContentWidth  float64
	ContentHeight float64

	// Fitted is true when the footprint fits inside the viewport on both axes.
	Fitted bool
}

// Degrees returns the instruction rotation in degrees.
func (ri RenderInstruction) Degrees() float64 {
	return ri.Rotation * 180 / math.Pi
}

// Content returns the rotated and scaled image footprint.
func (ri RenderInstruction) Content() Size {
	return Size{Width: ri.ContentWidth, Height: ri.ContentHeight}
}

// ScrollRange returns the maximum scroll offset on both axes for the given viewport.
func (ri RenderInstruction) ScrollRange(viewport Size) Size {
	return Size{
		Width:  math.Max(0, ri.ContentWidth-viewport.Width),
		Height: math.Max(0, ri.ContentHeight-viewport.Height),
	}
}

// ClampScroll returns a copy of the instruction with the scroll offset restricted
// to the range a scroll container can actually reach.
func (ri RenderInstruction) ClampScroll(viewport Size) RenderInstruction {
	r := ri.ScrollRange(viewport)
	ri.ScrollLeft = math.Max(0, math.Min(ri.ScrollLeft, r.Width))
	ri.ScrollTop = math.Max(0, math.Min(ri.ScrollTop, r.Height))
	return ri
}

// ImageToViewport maps a natural image pixel to its position inside the viewport.
func (ri RenderInstruction) ImageToViewport(natural Size, p Point) Point {
	q := RotatePoint(Point{X: p.X - natural.Width/2, Y: p.Y - natural.Height/2}, ri.Rotation)
	return Point{
		X: natural.Width/2 + ri.TranslateX + q.X*ri.Scale - ri.ScrollLeft,
		Y: natural.Height/2 + ri.TranslateY + q.Y*ri.Scale - ri.ScrollTop,
	}
}

// ViewportToImage maps a viewport position back to the natural image pixel displayed there.
func (ri RenderInstruction) ViewportToImage(natural Size, v Point) Point {
	if ri.Scale <= 0 {
		return Point{X: natural.Width / 2, Y: natural.Height / 2}
	}
	l := ri.toLocal(natural, v)
	return Point{X: l.X + natural.Width/2, Y: l.Y + natural.Height/2}
}

// toLocal converts a viewport position into the unrotated and unscaled image space
// centered on the natural image midpoint.
func (ri RenderInstruction) toLocal(natural Size, v Point) Point {
	d := Point{
		X: v.X + ri.ScrollLeft - natural.Width/2 - ri.TranslateX,
		Y: v.Y + ri.ScrollTop - natural.Height/2 - ri.TranslateY,
	}
	d = RotatePoint(d, -ri.Rotation)
	return Point{X: d.X / ri.Scale, Y: d.Y / ri.Scale}
}

// projects reports whether the instruction can map viewport positions back to the image.
func (ri *RenderInstruction) projects() bool {
	if ri == nil || ri.Scale <= 0 {
		return false
	}
	for _, f := range []float64{ri.Scale, ri.Rotation, ri.TranslateX, ri.TranslateY, ri.ScrollLeft, ri.ScrollTop} {
		if !isFinite(f) {
			return false
		}
	}
	return true
}

// Resolve recomputes the render instruction for the requested state so that the image point
// under the state anchor stays at the same viewport position it had under prev.
// A nil prev (first render) or a degenerated previous transform anchors the image center.
// The returned scroll offset is not clamped: it may be negative or exceed the scroll range
// when the anchor cannot be kept in place by scrolling alone.
func Resolve(natural, viewport Size, prev *RenderInstruction, state TransformState) RenderInstruction {
	anchor := Point{
		X: viewport.Width * state.Anchor.X,
		Y: viewport.Height * state.Anchor.Y,
	}

	var local Point
	if prev.projects() {
		local = prev.toLocal(natural, anchor)
	}

	rad := degToRad(state.Rotation)
	content := RotatedSize(natural, rad).Scale(state.Scale)
	plane := Size{
		Width:  math.Max(content.Width, viewport.Width),
		Height: math.Max(content.Height, viewport.Height),
	}

	p := RotatePoint(local, rad)
	p.X = p.X*state.Scale + plane.Width/2
	p.Y = p.Y*state.Scale + plane.Height/2

	return RenderInstruction{
		TranslateX:    (plane.Width - natural.Width) / 2,
		TranslateY:    (plane.Height - natural.Height) / 2,
		Rotation:      rad,
		Scale:         state.Scale,
		ScrollLeft:    p.X - anchor.X,
		ScrollTop:     p.Y - anchor.Y,
		ContentWidth:  content.Width,
		ContentHeight: content.Height,
		// The footprint is compared on the pixel grid, otherwise a contain fit
		// rounded to 6 decimals could overflow the viewport by a fraction of a pixel.
		Fitted: math.Round(content.Width) <= viewport.Width &&
			math.Round(content.Height) <= viewport.Height,
	}
}
