package pivot

import "math"

// DefaultPanStep is the scroll distance in pixels of a single pan request.
const DefaultPanStep = 10

// Viewer owns the transformation state of a single image displayed in a scrollable viewport.
// Every mutation is followed by one recompute and returns the resulting RenderInstruction,
// which the host applies as a paint transform and a scroll command.
// A Viewer is not safe for concurrent use; it is meant to be driven by a single UI event loop.
type Viewer struct {
	natural  Size
	viewport Size
	limits   Limits
	state    TransformState
	inst     RenderInstruction
	rendered bool
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithLimits overrides the default scale limits.
func WithLimits(l Limits) Option {
	return func(v *Viewer) {
		if l.Min > 0 && l.Max >= l.Min {
			v.limits = l
		}
	}
}

// NewViewer creates a viewer for an image of the given natural size, fitted into the viewport.
// In case the fit is undefined (empty image or viewport) the image is shown at its natural size.
func NewViewer(natural, viewport Size, opts ...Option) *Viewer {
	if !isFinite(viewport.Width) || !isFinite(viewport.Height) {
		viewport = Size{}
	}
	v := &Viewer{
		natural:  natural,
		viewport: viewport,
		limits:   DefaultLimits(),
		state:    TransformState{Scale: 1, Anchor: CenterAnchor},
	}
	for _, opt := range opts {
		opt(v)
	}
	if s, err := FitScale(natural, 0, viewport, FitContain); err == nil {
		v.state.Scale = s
	}
	v.apply()

	return v
}

// State returns the current transformation state.
func (v *Viewer) State() TransformState { return v.state }

// Instruction returns the last computed render instruction.
func (v *Viewer) Instruction() RenderInstruction { return v.inst }

// NaturalSize returns the natural image size.
func (v *Viewer) NaturalSize() Size { return v.natural }

// ViewportSize returns the current viewport size.
func (v *Viewer) ViewportSize() Size { return v.viewport }

// Limits returns the scale limits of the viewer.
func (v *Viewer) Limits() Limits { return v.limits }

// SetScale sets the absolute scale, clamped to the scale limits.
func (v *Viewer) SetScale(s float64) RenderInstruction {
	if isFinite(s) {
		v.state.Scale = v.limits.Clamp(s)
	}
	return v.apply()
}

// StepZoom zooms in (positive direction) or out (negative direction) on the step grid.
func (v *Viewer) StepZoom(direction int) RenderInstruction {
	v.state.Scale = v.limits.StepScale(v.state.Scale, direction)
	return v.apply()
}

// SetRotation sets the absolute rotation in degrees.
func (v *Viewer) SetRotation(deg float64) RenderInstruction {
	if isFinite(deg) {
		v.state.Rotation = normalizeDegrees(deg)
	}
	return v.apply()
}

// RotateBy rotates the image relative to its current rotation.
func (v *Viewer) RotateBy(delta float64) RenderInstruction {
	return v.SetRotation(v.state.Rotation + delta)
}

// RotateToward sets the rotation pointed by a drag handle located at (dx, dy)
// relative to the center of the rotation wheel.
func (v *Viewer) RotateToward(dx, dy float64) RenderInstruction {
	return v.SetRotation(wholeDegrees(WheelAngle(dx, dy)))
}

// RotateByWheel adds the wheel angle of the clicked point to the current rotation.
func (v *Viewer) RotateByWheel(dx, dy float64) RenderInstruction {
	return v.SetRotation(wholeDegrees(normalizeDegrees(WheelAngle(dx, dy) + v.state.Rotation)))
}

// wholeDegrees truncates the wheel angle to whole degrees. The angle is rounded to
// 6 decimals first, so 89.99999999999999 coming out of atan2 counts as 90.
func wholeDegrees(deg float64) float64 {
	return math.Floor(round6(deg))
}

// FitToWindow fits the image into the viewport using the provided mode.
// The anchor is moved to the viewport center and the result is not clamped to the scale limits.
// If the fit is undefined the scale remains unchanged.
func (v *Viewer) FitToWindow(mode FitMode) RenderInstruction {
	v.state.Anchor = CenterAnchor
	if s, err := FitScale(v.natural, v.state.Rotation, v.viewport, mode); err == nil {
		v.state.Scale = s
	}
	return v.apply()
}

// SetAnchorPoint defines the viewport fraction which stays in place during the next recompute.
func (v *Viewer) SetAnchorPoint(fx, fy float64) {
	v.state.Anchor = NewAnchor(fx, fy)
}

// ZoomToPoint zooms the image to its natural size around the given viewport fraction.
func (v *Viewer) ZoomToPoint(fx, fy float64) RenderInstruction {
	v.SetAnchorPoint(fx, fy)
	return v.SetScale(1)
}

// ResetAnchorToCenterAndFit returns to the contain fit around the viewport center.
func (v *Viewer) ResetAnchorToCenterAndFit() RenderInstruction {
	return v.FitToWindow(FitContain)
}

// ToggleZoom implements the click interaction: a fitted image is zoomed to 100%
// around the clicked fraction, otherwise the image is fitted back into the viewport.
func (v *Viewer) ToggleZoom(fx, fy float64) RenderInstruction {
	if v.inst.Fitted {
		return v.ZoomToPoint(fx, fy)
	}
	return v.ResetAnchorToCenterAndFit()
}

// FocusOn zooms to the requested scale while keeping the image point p at its current position.
// Points outside of the viewport are anchored at the closest viewport edge.
func (v *Viewer) FocusOn(p Point, scale float64) RenderInstruction {
	if v.viewport.Valid() {
		q := v.inst.ImageToViewport(v.natural, p)
		v.SetAnchorPoint(q.X/v.viewport.Width, q.Y/v.viewport.Height)
	}
	return v.SetScale(scale)
}

// OnViewportResize updates the viewport size. A fitted image is fitted again,
// otherwise the scale is preserved and only the layout is recomputed.
// Empty or non-finite sizes, like the one of a minimized window, are ignored.
func (v *Viewer) OnViewportResize(size Size) RenderInstruction {
	if !size.Valid() {
		return v.inst
	}
	fitted := v.inst.Fitted
	v.viewport = size
	v.state.Anchor = CenterAnchor
	if fitted {
		if s, err := FitScale(v.natural, v.state.Rotation, v.viewport, FitContain); err == nil {
			v.state.Scale = s
		}
	}
	return v.apply()
}

// ScrollBy pans the viewport by the given pixel distance.
func (v *Viewer) ScrollBy(dx, dy float64) RenderInstruction {
	return v.ScrollTo(v.inst.ScrollLeft+dx, v.inst.ScrollTop+dy)
}

// ScrollTo moves the viewport to the given scroll offset.
func (v *Viewer) ScrollTo(x, y float64) RenderInstruction {
	if isFinite(x) && isFinite(y) {
		v.inst.ScrollLeft, v.inst.ScrollTop = x, y
		v.inst = v.inst.ClampScroll(v.viewport)
	}
	return v.inst
}

// apply recomputes the render instruction, clamps the scroll offset the way a scroll
// container does and moves the anchor back to the viewport center.
func (v *Viewer) apply() RenderInstruction {
	var prev *RenderInstruction
	if v.rendered {
		prev = &v.inst
	}
	inst := Resolve(v.natural, v.viewport, prev, v.state)
	v.inst = inst.ClampScroll(v.viewport)
	v.rendered = true
	v.state.Anchor = CenterAnchor

	return v.inst
}
