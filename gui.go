package pivot

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/esimov/pivot/utils"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	maxScreenX = 1366
	maxScreenY = 768

	// dragThreshold is the distance in pixels a pressed pointer has to travel
	// before the press is handled as a pan instead of a click.
	dragThreshold = 4
)

var (
	defaultBkgColor  = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	defaultHUDColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0}
	defaultFaceColor = color.NRGBA{R: 0x0f, G: 0x8b, B: 0x8d, A: 0xff}
)

// Gui is the Gio window displaying a single image driven by a Viewer.
// Keyboard, pointer and window resize events are translated into viewer
// actions and the resulting render instruction is painted on every frame.
type Gui struct {
	cfg struct {
		window struct {
			w, h  float64
			title string
		}
		color struct {
			background color.NRGBA
			hud        color.NRGBA
			face       color.NRGBA
		}
		fit FitMode
	}
	img    image.Image
	imgOp  paint.ImageOp
	viewer *Viewer
	keymap map[string]Action
	faces  []Face
	theme  *material.Theme
	sized  bool

	drag struct {
		active bool
		moved  bool
		start  f32.Point
		last   f32.Point
	}
}

// GuiOption configures the window.
type GuiOption func(*Gui)

// WithBackground sets the color of the window areas not covered by the image.
func WithBackground(c color.Color) GuiOption {
	return func(g *Gui) {
		g.cfg.color.background = toNRGBA(c)
	}
}

// WithFaces outlines the detected faces on top of the image.
func WithFaces(faces []Face) GuiOption {
	return func(g *Gui) {
		g.faces = faces
	}
}

// WithFitMode sets the fit applied once the window has its final size.
func WithFitMode(mode FitMode) GuiOption {
	return func(g *Gui) {
		g.cfg.fit = mode
	}
}

// WithMaxWindowSize overrides the maximum initial window size.
func WithMaxWindowSize(w, h int) GuiOption {
	return func(g *Gui) {
		if w > 0 && h > 0 {
			g.cfg.window.w, g.cfg.window.h = getWindowSize(sizeOf(g.img), float64(w), float64(h))
		}
	}
}

// NewGUI initializes the Gio interface for the image. The keymap binds key names
// (lower case characters or left, right, up, down for the arrow keys) to actions.
func NewGUI(img image.Image, title string, keymap map[string]Action, limits Limits, opts ...GuiOption) *Gui {
	g := &Gui{
		img:    img,
		imgOp:  paint.NewImageOp(img),
		keymap: keymap,
		theme:  material.NewTheme(),
	}
	g.theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	g.cfg.window.title = title
	g.cfg.window.w, g.cfg.window.h = getWindowSize(sizeOf(img), maxScreenX, maxScreenY)
	g.cfg.color.background = defaultBkgColor
	g.cfg.color.hud = defaultHUDColor
	g.cfg.color.face = defaultFaceColor

	for _, opt := range opts {
		opt(g)
	}
	g.viewer = NewViewer(sizeOf(img), Size{Width: g.cfg.window.w, Height: g.cfg.window.h}, WithLimits(limits))

	return g
}

// Viewer returns the viewer driven by the window.
func (g *Gui) Viewer() *Viewer { return g.viewer }

// getWindowSize returns the window size fitting the image, keeping its aspect ratio
// in case the image is larger than the maximum window size.
func getWindowSize(natural Size, maxW, maxH float64) (float64, float64) {
	w, h := natural.Width, natural.Height
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	if w > maxW || h > maxH {
		r := math.Min(maxW/w, maxH/h)
		w, h = w*r, h*r
	}
	return math.Round(w), math.Round(h)
}

// Run is the core method of the Gio GUI application. It blocks until
// the window is closed or the ESC key is pressed.
func (g *Gui) Run() error {
	w := new(app.Window)
	w.Option(app.Title(g.cfg.window.title))
	w.Option(app.Size(unit.Dp(g.cfg.window.w), unit.Dp(g.cfg.window.h)))

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			if quit := g.frame(gtx); quit {
				return nil
			}
			e.Frame(gtx.Ops)
		}
	}
}

// resize forwards the window size to the viewer. The window is created with a size
// in device independent units, so the configured fit can only be applied once the
// first non-empty frame reports the size in pixels.
func (g *Gui) resize(viewport Size) {
	if g.sized && viewport == g.viewer.ViewportSize() {
		return
	}
	g.viewer.OnViewportResize(viewport)
	if !g.sized && viewport.Valid() {
		g.sized = true
		if g.cfg.fit != FitContain {
			g.viewer.FitToWindow(g.cfg.fit)
		}
	}
}

// frame handles the input events and draws the window content.
func (g *Gui) frame(gtx C) bool {
	size := gtx.Constraints.Max
	g.resize(Size{Width: float64(size.X), Height: float64(size.Y)})

	if quit := g.handleKeys(gtx); quit {
		return true
	}
	g.handlePointer(gtx)

	paint.Fill(gtx.Ops, g.cfg.color.background)
	g.drawImage(gtx)
	g.drawOrientation(gtx)
	g.drawHUD(gtx)

	// Register the whole window as the pointer input area.
	area := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, g)
	area.Pop()

	return false
}

// handleKeys translates the key presses into viewer actions. It reports
// whether the window should be closed.
func (g *Gui) handleKeys(gtx C) bool {
	for {
		ev, ok := gtx.Event(key.Filter{Name: key.NameEscape}, key.Filter{Optional: key.ModShift})
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		if e.Name == key.NameEscape {
			return true
		}
		if a, ok := g.keymap[keyName(e.Name)]; ok {
			a.Apply(g.viewer)
			gtx.Execute(op.InvalidateCmd{})
		}
	}
	return false
}

// handlePointer implements the pointer interactions: a click toggles between the fitted
// and the natural size around the clicked point, a drag pans the image, the wheel zooms
// around the pointer and the secondary button rotates the image by the wheel angle
// of the pointer around the window center.
func (g *Gui) handlePointer(gtx C) {
	size := gtx.Constraints.Max
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  g,
			Kinds:   pointer.Press | pointer.Release | pointer.Drag | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: math.MinInt32, Max: math.MaxInt32},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		fx, fy := float64(pe.Position.X)/float64(size.X), float64(pe.Position.Y)/float64(size.Y)

		switch pe.Kind {
		case pointer.Press:
			switch pe.Buttons {
			case pointer.ButtonPrimary:
				g.drag.active, g.drag.moved = true, false
				g.drag.start, g.drag.last = pe.Position, pe.Position
			case pointer.ButtonSecondary:
				cx, cy := float32(size.X)/2, float32(size.Y)/2
				g.viewer.RotateByWheel(float64(pe.Position.X-cx), float64(pe.Position.Y-cy))
				gtx.Execute(op.InvalidateCmd{})
			}
		case pointer.Drag:
			if !g.drag.active {
				continue
			}
			if !g.drag.moved {
				d := pe.Position.Sub(g.drag.start)
				if math.Hypot(float64(d.X), float64(d.Y)) < dragThreshold {
					continue
				}
				g.drag.moved = true
			}
			d := pe.Position.Sub(g.drag.last)
			g.drag.last = pe.Position
			g.viewer.ScrollBy(float64(-d.X), float64(-d.Y))
			gtx.Execute(op.InvalidateCmd{})
		case pointer.Release:
			if g.drag.active && !g.drag.moved {
				g.viewer.ToggleZoom(fx, fy)
				gtx.Execute(op.InvalidateCmd{})
			}
			g.drag.active = false
		case pointer.Scroll:
			if pe.Scroll.Y == 0 {
				continue
			}
			direction := 1
			if pe.Scroll.Y > 0 {
				direction = -1
			}
			g.viewer.SetAnchorPoint(fx, fy)
			g.viewer.StepZoom(direction)
			gtx.Execute(op.InvalidateCmd{})
		}
	}
}

// drawImage paints the image transformed by the current render instruction.
func (g *Gui) drawImage(gtx C) {
	natural := g.viewer.NaturalSize()
	inst := g.viewer.Instruction()
	if inst.Scale <= 0 || !natural.Valid() {
		return
	}

	m := affine(natural, inst)
	defer op.Affine(f32.NewAffine2D(
		float32(m[0]), float32(m[1]), float32(m[2]),
		float32(m[3]), float32(m[4]), float32(m[5]),
	)).Push(gtx.Ops).Pop()

	b := g.img.Bounds()
	stack := clip.Rect{Max: image.Pt(b.Dx(), b.Dy())}.Push(gtx.Ops)
	g.imgOp.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	stack.Pop()

	g.drawFaces(gtx, inst.Scale)
}

// drawHUD shows the current scale and rotation in the top left corner.
func (g *Gui) drawHUD(gtx C) {
	st := g.viewer.State()
	natural := g.viewer.NaturalSize()
	msg := fmt.Sprintf("%s  %g°  %gx%g",
		utils.FormatPercent(st.Scale), st.DisplayRotation(), natural.Width, natural.Height)

	layout.Inset{Top: 8, Left: 8}.Layout(gtx, func(gtx C) D {
		label := material.Caption(g.theme, msg)
		label.Color = g.cfg.color.hud
		return label.Layout(gtx)
	})
}

// keyName converts the Gio key name into the name used by the keymap.
func keyName(n key.Name) string {
	switch n {
	case key.NameLeftArrow:
		return "left"
	case key.NameRightArrow:
		return "right"
	case key.NameUpArrow:
		return "up"
	case key.NameDownArrow:
		return "down"
	}
	return strings.ToLower(string(n))
}
