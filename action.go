package pivot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownAction is returned when an action cannot be parsed.
var ErrUnknownAction = errors.New("unknown action")

// ActionKind enumerates the requests a host can issue to the viewer.
type ActionKind int

// The supported action kinds.
const (
	ActZoomIn ActionKind = iota
	ActZoomOut
	ActSetScale
	ActRotateBy
	ActSetRotation
	ActFit
	ActToggleZoom
	ActZoomToPoint
	ActPan
	ActResize
	ActWheelRotate
	ActHandleRotate
)

var actionNames = map[ActionKind]string{
	ActZoomIn:       "zoom-in",
	ActZoomOut:      "zoom-out",
	ActSetScale:     "scale",
	ActRotateBy:     "rotate",
	ActSetRotation:  "rotation",
	ActFit:          "fit",
	ActToggleZoom:   "click",
	ActZoomToPoint:  "zoom-to",
	ActPan:          "pan",
	ActResize:       "resize",
	ActWheelRotate:  "wheel",
	ActHandleRotate: "handle",
}

// RotationPresets maps the direction buttons to their absolute rotation.
var RotationPresets = map[string]float64{
	"up":    0,
	"right": 90,
	"down":  180,
	"left":  270,
}

// Action is a single request carrying only primitive arguments.
type Action struct {
	Kind ActionKind
	X, Y float64
	Mode FitMode
}

// ParseAction parses the textual form of an action, e.g.:
//
//	zoom-in, zoom-out, scale:1.5, scale:150%, rotate:-10, rotation:90, rotation:left,
//	fit, fit:width, click:0.25,0.25, zoom-to:0.5,0.5, pan:10,0, resize:800x600,
//	wheel:120,-40, handle:0,-100
func ParseAction(s string) (Action, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(s), ":")
	name = strings.ToLower(name)

	var (
		a   Action
		err error
	)
	switch name {
	case "zoom-in", "+":
		a.Kind = ActZoomIn
	case "zoom-out", "-":
		a.Kind = ActZoomOut
	case "actual-size":
		a = Action{Kind: ActSetScale, X: 1}
	case "scale":
		a.Kind = ActSetScale
		a.X, err = parseScale(arg)
	case "rotate":
		a.Kind = ActRotateBy
		a.X, err = parseFloat(arg)
	case "rotation":
		a.Kind = ActSetRotation
		if deg, ok := RotationPresets[strings.ToLower(arg)]; ok {
			a.X = deg
		} else {
			a.X, err = parseFloat(arg)
		}
	case "fit":
		a.Kind = ActFit
		a.Mode, err = ParseFitMode(arg)
	case "click":
		a.Kind = ActToggleZoom
		a.X, a.Y, err = parsePair(arg, ",")
	case "zoom-to":
		a.Kind = ActZoomToPoint
		a.X, a.Y, err = parsePair(arg, ",")
	case "pan":
		a.Kind = ActPan
		a.X, a.Y, err = parsePair(arg, ",")
	case "resize":
		a.Kind = ActResize
		a.X, a.Y, err = parsePair(arg, "x")
	case "wheel":
		a.Kind = ActWheelRotate
		a.X, a.Y, err = parsePair(arg, ",")
	case "handle":
		a.Kind = ActHandleRotate
		a.X, a.Y, err = parsePair(arg, ",")
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	if err != nil {
		return Action{}, fmt.Errorf("invalid %s action %q: %w", name, s, err)
	}
	return a, nil
}

// String returns the textual form of the action, accepted by ParseAction.
func (a Action) String() string {
	name := actionNames[a.Kind]
	switch a.Kind {
	case ActZoomIn, ActZoomOut:
		return name
	case ActSetScale, ActRotateBy, ActSetRotation:
		return name + ":" + strconv.FormatFloat(a.X, 'f', -1, 64)
	case ActFit:
		return name + ":" + a.Mode.String()
	case ActResize:
		return fmt.Sprintf("%s:%gx%g", name, a.X, a.Y)
	}
	return fmt.Sprintf("%s:%g,%g", name, a.X, a.Y)
}

// Apply executes the action on the viewer and returns the new render instruction.
func (a Action) Apply(v *Viewer) RenderInstruction {
	switch a.Kind {
	case ActZoomIn:
		return v.StepZoom(1)
	case ActZoomOut:
		return v.StepZoom(-1)
	case ActSetScale:
		return v.SetScale(a.X)
	case ActRotateBy:
		return v.RotateBy(a.X)
	case ActSetRotation:
		return v.SetRotation(a.X)
	case ActFit:
		return v.FitToWindow(a.Mode)
	case ActToggleZoom:
		return v.ToggleZoom(a.X, a.Y)
	case ActZoomToPoint:
		return v.ZoomToPoint(a.X, a.Y)
	case ActPan:
		return v.ScrollBy(a.X, a.Y)
	case ActResize:
		return v.OnViewportResize(Size{Width: a.X, Height: a.Y})
	case ActWheelRotate:
		return v.RotateByWheel(a.X, a.Y)
	case ActHandleRotate:
		return v.RotateToward(a.X, a.Y)
	}
	return v.Instruction()
}

// ParseActions parses a list of textual actions.
func ParseActions(list []string) ([]Action, error) {
	actions := make([]Action, 0, len(list))
	for _, s := range list {
		a, err := ParseAction(s)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// parseScale accepts both factors (1.5) and percentages (150%).
func parseScale(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := parseFloat(p)
		return v / 100, err
	}
	return parseFloat(s)
}

// parseFloat parses a finite number, NaN and Inf are rejected.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if !isFinite(v) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

func parsePair(s, sep string) (float64, float64, error) {
	a, b, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("expected two values separated by %q", sep)
	}
	x, err := parseFloat(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := parseFloat(b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
