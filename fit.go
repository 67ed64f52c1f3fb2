package pivot

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUndefinedFit is returned when the fit scale cannot be computed
// because the natural or the viewport size is empty.
var ErrUndefinedFit = errors.New("fit scale is undefined for an empty image or viewport")

// FitMode defines how the image is fitted into the viewport.
type FitMode int

const (
	// FitContain fits the whole image into the viewport, but never enlarges it past its natural size.
	FitContain FitMode = iota
	// FitWidth matches the viewport width.
	FitWidth
	// FitHeight matches the viewport height.
	FitHeight
)

func (m FitMode) String() string {
	switch m {
	case FitContain:
		return "contain"
	case FitWidth:
		return "width"
	case FitHeight:
		return "height"
	}
	return fmt.Sprintf("FitMode(%d)", int(m))
}

// ParseFitMode converts the textual fit mode into FitMode.
func ParseFitMode(s string) (FitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "contain", "fit", "both":
		return FitContain, nil
	case "width", "w":
		return FitWidth, nil
	case "height", "h":
		return FitHeight, nil
	}
	return FitContain, fmt.Errorf("unknown fit mode %q", s)
}

// FitScale returns the scale needed to fit the image, rotated by degrees, into the viewport.
// Width and height only fits are not capped, the contain fit never exceeds 1.0.
func FitScale(natural Size, degrees float64, viewport Size, mode FitMode) (float64, error) {
	if !natural.Valid() || !viewport.Valid() {
		return 0, ErrUndefinedFit
	}
	fp := RotatedSize(natural, degToRad(degrees))
	if !fp.Valid() {
		return 0, ErrUndefinedFit
	}

	sw := round6(viewport.Width / fp.Width)
	sh := round6(viewport.Height / fp.Height)
	if !isFinite(sw) || !isFinite(sh) || sw <= 0 || sh <= 0 {
		return 0, ErrUndefinedFit
	}

	switch mode {
	case FitWidth:
		return sw, nil
	case FitHeight:
		return sh, nil
	default:
		return math.Min(math.Min(sw, sh), 1), nil
	}
}
