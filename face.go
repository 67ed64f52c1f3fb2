package pivot

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
	"github.com/esimov/pivot/utils"
)

//go:embed data/facefinder
var cascadeFile []byte

// ErrNoFace is returned when no face has been detected on the image.
var ErrNoFace = errors.New("no face detected")

// Face is a detected face region expressed in natural image pixels.
type Face struct {
	Center Point
	Size   float64
	Score  float32
}

// Rect returns the square bounding the face.
func (f Face) Rect() image.Rectangle {
	h := f.Size / 2
	return image.Rect(int(f.Center.X-h), int(f.Center.Y-h), int(f.Center.X+h), int(f.Center.Y+h))
}

// FaceDetector wraps the pigo face classifier.
type FaceDetector struct {
	classifier *pigo.Pigo

	MinSize      int
	ShiftFactor  float64
	ScaleFactor  float64
	Angle        float64
	IoUThreshold float64
	MinScore     float32
}

// NewFaceDetector unpacks the binary cascade classifier.
func NewFaceDetector(cascade []byte) (fd *FaceDetector, err error) {
	// A truncated cascade file makes the unpacker index past the buffer.
	defer func() {
		if r := recover(); r != nil {
			fd, err = nil, fmt.Errorf("error unpacking the cascade file: %v", r)
		}
	}()

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %w", err)
	}

	return &FaceDetector{
		classifier:   classifier,
		MinSize:      20,
		ShiftFactor:  0.1,
		ScaleFactor:  1.1,
		IoUThreshold: 0.2,
		MinScore:     5.0,
	}, nil
}

// DefaultFaceDetector returns a detector using the bundled frontal face classifier.
func DefaultFaceDetector() (*FaceDetector, error) {
	return NewFaceDetector(cascadeFile)
}

// LoadFaceDetector reads the cascade classifier from a file.
func LoadFaceDetector(path string) (*FaceDetector, error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read the cascade file: %w", err)
	}
	return NewFaceDetector(cascade)
}

// Detect returns the faces found on the image, ordered by their detection score.
func (fd *FaceDetector) Detect(img image.Image) []Face {
	src := imgToNRGBA(img)
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()

	cParams := pigo.CascadeParams{
		MinSize:     fd.MinSize,
		MaxSize:     utils.Max(dx, dy),
		ShiftFactor: fd.ShiftFactor,
		ScaleFactor: fd.ScaleFactor,

		ImageParams: pigo.ImageParams{
			Pixels: rgbToGrayscale(src),
			Rows:   dy,
			Cols:   dx,
			Dim:    dx,
		},
	}

	// The result contains the row, column, scale and detection score of each region.
	dets := fd.classifier.RunCascade(cParams, fd.Angle)
	dets = fd.classifier.ClusterDetections(dets, fd.IoUThreshold)

	faces := make([]Face, 0, len(dets))
	for _, d := range dets {
		if d.Q < fd.MinScore {
			continue
		}
		faces = append(faces, Face{
			Center: Point{X: float64(d.Col), Y: float64(d.Row)},
			Size:   float64(d.Scale),
			Score:  d.Q,
		})
	}
	return faces
}

// dominantFace picks the largest face, the detection score breaking ties.
func dominantFace(faces []Face) (Face, error) {
	if len(faces) == 0 {
		return Face{}, ErrNoFace
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.Size > best.Size || (f.Size == best.Size && f.Score > best.Score) {
			best = f
		}
	}
	return best, nil
}

// FocusFace zooms the viewer on the dominant face while keeping it at its current screen position.
func (v *Viewer) FocusFace(faces []Face, scale float64) (RenderInstruction, error) {
	f, err := dominantFace(faces)
	if err != nil {
		return v.Instruction(), err
	}
	return v.FocusOn(f.Center, scale), nil
}
