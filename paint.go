package pivot

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/pivot/utils"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// rightAngleEpsilon is the tolerance, in radians, for treating a rotation as a multiple of 90°.
const rightAngleEpsilon = 1e-9

// Paint draws the visible part of src into a new viewport sized image,
// applying the render instruction the same way an interactive host would.
// Areas not covered by the image are filled with the bg color.
func Paint(src image.Image, inst RenderInstruction, viewport Size, bg color.Color) *image.NRGBA {
	w, h := int(math.Round(viewport.Width)), int(math.Round(viewport.Height))
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	dst := imaging.New(w, h, bg)
	if inst.Scale <= 0 || src.Bounds().Empty() {
		return dst
	}

	if quarter, ok := quarterTurns(inst.Rotation); ok {
		paintAxisAligned(dst, src, inst, quarter)
	} else {
		paintAffine(dst, src, inst)
	}
	return dst
}

// paintAffine maps the source through the full rotate-scale-translate-scroll matrix.
func paintAffine(dst *image.NRGBA, src image.Image, inst RenderInstruction) {
	s2d := affine(sizeOf(src), inst)

	// Source coordinates are relative to the source bounds origin.
	o := src.Bounds().Min
	s2d[2] -= s2d[0]*float64(o.X) + s2d[1]*float64(o.Y)
	s2d[5] -= s2d[3]*float64(o.X) + s2d[4]*float64(o.Y)

	draw.CatmullRom.Transform(dst, s2d, src, src.Bounds(), draw.Over, nil)
}

// affine returns the matrix mapping natural image pixels to viewport pixels.
// The natural center is the pivot of the rotation and of the scaling.
func affine(natural Size, inst RenderInstruction) f64.Aff3 {
	sin, cos := math.Sincos(inst.Rotation)
	a, b := inst.Scale*cos, -inst.Scale*sin
	d, e := inst.Scale*sin, inst.Scale*cos

	cx, cy := natural.Width/2, natural.Height/2
	tx := cx + inst.TranslateX - inst.ScrollLeft - (a*cx + b*cy)
	ty := cy + inst.TranslateY - inst.ScrollTop - (d*cx + e*cy)

	return f64.Aff3{a, b, tx, d, e, ty}
}

// paintAxisAligned handles the rotations by multiples of 90°, where the image can be
// rotated losslessly and resampled with a Lanczos filter.
func paintAxisAligned(dst *image.NRGBA, src image.Image, inst RenderInstruction, quarter int) {
	var rotated image.Image
	switch quarter {
	case 1:
		// The screen y axis points downward, so a positive angle turns clockwise.
		rotated = imaging.Rotate270(src)
	case 2:
		rotated = imaging.Rotate180(src)
	case 3:
		rotated = imaging.Rotate90(src)
	default:
		rotated = src
	}

	cw, ch := uint(math.Round(inst.ContentWidth)), uint(math.Round(inst.ContentHeight))
	if cw == 0 || ch == 0 {
		return
	}
	scaled := resize.Resize(cw, ch, rotated, resize.Lanczos3)

	natural := sizeOf(src)
	x := natural.Width/2 + inst.TranslateX - inst.ContentWidth/2 - inst.ScrollLeft
	y := natural.Height/2 + inst.TranslateY - inst.ContentHeight/2 - inst.ScrollTop
	pt := image.Pt(int(math.Round(x)), int(math.Round(y)))

	draw.Draw(dst, scaled.Bounds().Sub(scaled.Bounds().Min).Add(pt), scaled, scaled.Bounds().Min, draw.Over)
}

// quarterTurns returns the number of clockwise quarter turns in rad,
// in case rad is a multiple of π/2.
func quarterTurns(rad float64) (int, bool) {
	q := rad / (math.Pi / 2)
	r := math.Round(q)
	if utils.Abs(q-r)*(math.Pi/2) > rightAngleEpsilon {
		return 0, false
	}
	n := int(r) % 4
	if n < 0 {
		n += 4
	}
	return n, true
}
