package pivot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/esimov/pivot/utils"
)

// ErrInvalidViewport is returned when the requested viewport has no area.
var ErrInvalidViewport = errors.New("invalid viewport size")

// Processor renders the visible part of an image headlessly: the image is loaded into
// a Viewer, the actions are applied in order and the viewport is painted the same way
// an interactive host would display it.
type Processor struct {
	// Viewport is the size of the rendered image. An empty viewport defaults to the natural image size.
	Viewport Size
	Actions  []Action
	Limits   Limits
	// Fit is the initial fit mode of the image.
	Fit        FitMode
	Background color.Color

	// FaceDetector, if set, is used to zoom on the dominant face at FaceScale
	// before the actions are applied.
	FaceDetector *FaceDetector
	FaceScale    float64

	Spinner *utils.Spinner
}

// Process decodes the image read from r, renders it and encodes the result into w.
// We are using the io package, since we can provide different input and output types,
// as long as they implement the io.Reader and io.Writer interface.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	src, err := decode(r)
	if err != nil {
		return err
	}

	dst, _, err := p.Render(src)
	if err != nil {
		return err
	}
	return encodeImg(w, dst)
}

// Render paints the viewport and returns it along with the final render instruction.
func (p *Processor) Render(src image.Image) (*image.NRGBA, RenderInstruction, error) {
	natural := sizeOf(src)
	viewport := p.Viewport
	if viewport == (Size{}) {
		viewport = natural
	}
	if !viewport.Valid() {
		return nil, RenderInstruction{}, fmt.Errorf("%w: %gx%g", ErrInvalidViewport, viewport.Width, viewport.Height)
	}

	v := NewViewer(natural, viewport, WithLimits(p.Limits))
	if p.Fit != FitContain {
		v.FitToWindow(p.Fit)
	}

	if p.FaceDetector != nil {
		scale := p.FaceScale
		if scale <= 0 {
			scale = 1
		}
		// An image without faces is rendered as if the detector was not set.
		if _, err := v.FocusFace(p.FaceDetector.Detect(src), scale); err != nil && !errors.Is(err, ErrNoFace) {
			return nil, RenderInstruction{}, err
		}
	}

	for _, a := range p.Actions {
		a.Apply(v)
	}

	bg := p.Background
	if bg == nil {
		bg = color.Black
	}
	inst := v.Instruction()

	return Paint(src, inst, v.ViewportSize(), bg), inst, nil
}
