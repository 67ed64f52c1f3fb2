package pivot

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// orientationRadius is the length in pixels of the rotation marker.
const orientationRadius = 36

// drawFaces outlines the detected faces. It is called with the image transform
// already applied, so the stroke width is divided by the scale to stay constant
// on the screen.
func (g *Gui) drawFaces(gtx C, scale float64) {
	if len(g.faces) == 0 || scale <= 0 {
		return
	}
	width := float32(2 / scale)
	for _, f := range g.faces {
		paint.FillShape(gtx.Ops, g.cfg.color.face,
			clip.Stroke{
				Path:  clip.Rect(f.Rect()).Path(),
				Width: width,
			}.Op(),
		)
	}
}

// drawOrientation draws a marker from the window center pointing to the top edge of
// the rotated image, the way the rotation wheel shows the current angle.
func (g *Gui) drawOrientation(gtx C) {
	deg := g.viewer.State().Rotation
	if deg == 0 {
		return
	}
	size := gtx.Constraints.Max
	center := f32.Pt(float32(size.X)/2, float32(size.Y)/2)

	// 0° points up and the angle grows clockwise.
	sin, cos := math.Sincos(degToRad(deg))
	tip := center.Add(f32.Pt(float32(sin*orientationRadius), float32(-cos*orientationRadius)))

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(center)
	path.LineTo(tip)

	paint.FillShape(gtx.Ops, g.cfg.color.hud,
		clip.Stroke{Path: path.End(), Width: 2}.Op(),
	)

	dot := clip.Ellipse{
		Min: tip.Sub(f32.Pt(3, 3)).Round(),
		Max: tip.Add(f32.Pt(3, 3)).Round(),
	}.Push(gtx.Ops)
	paint.ColorOp{Color: g.cfg.color.hud}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	dot.Pop()
}

// toNRGBA converts any color to color.NRGBA.
func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return defaultBkgColor
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
