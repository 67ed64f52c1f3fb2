// Package config loads the viewer settings: scale limits, key bindings,
// default fit mode and the window geometry.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/esimov/pivot"
	"github.com/esimov/pivot/utils"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for inconsistent settings.
var ErrInvalidConfig = errors.New("invalid configuration")

// Scale holds the zoom limits and the zoom step.
type Scale struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Window is the initial size of the viewer window.
type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config holds the viewer settings.
type Config struct {
	Scale      Scale             `yaml:"scale"`
	RotateStep float64           `yaml:"rotate_step"`
	PanStep    float64           `yaml:"pan_step"`
	Fit        string            `yaml:"fit"`
	Background string            `yaml:"background"`
	Window     Window            `yaml:"window"`
	Keys       map[string]string `yaml:"keys"`
}

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{
		Scale: Scale{
			Min:  pivot.ScaleMin,
			Max:  pivot.ScaleMax,
			Step: pivot.ScaleStep,
		},
		RotateStep: 10,
		PanStep:    pivot.DefaultPanStep,
		Fit:        pivot.FitContain.String(),
		Background: "#202020",
		Window:     Window{Width: 1366, Height: 768},
	}
	cfg.Keys = DefaultKeys(cfg.PanStep, cfg.RotateStep)

	return cfg
}

// DefaultKeys returns the default key bindings. Keys are named after the
// character they produce; the arrow keys are named left, right, up and down.
func DefaultKeys(panStep, rotateStep float64) map[string]string {
	pan := strconv.FormatFloat(panStep, 'f', -1, 64)
	rot := strconv.FormatFloat(rotateStep, 'f', -1, 64)

	return map[string]string{
		"left":  "pan:-" + pan + ",0",
		"right": "pan:" + pan + ",0",
		"up":    "pan:0,-" + pan,
		"down":  "pan:0," + pan,
		"+":     "zoom-in",
		"=":     "zoom-in",
		"-":     "zoom-out",
		"4":     "rotate:-" + rot,
		"6":     "rotate:" + rot,
		"5":     "rotation:0",
		"7":     "fit:width",
		"8":     "fit:height",
		"9":     "fit:contain",
		"0":     "actual-size",
		"*":     "actual-size",
	}
}

// Load reads the YAML configuration file. Settings missing from the file keep their
// default value. In case the file has no key bindings, the default bindings are
// generated with the configured pan and rotation steps.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the config file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses the YAML configuration read from r.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	cfg.Keys = nil

	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not parse the config file: %w", err)
	}
	if cfg.Keys == nil {
		cfg.Keys = DefaultKeys(cfg.PanStep, cfg.RotateStep)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes the configuration in YAML format.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("could not encode the config: %w", err)
	}
	return enc.Close()
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	switch {
	case c.Scale.Min <= 0:
		return fmt.Errorf("%w: scale.min must be positive", ErrInvalidConfig)
	case c.Scale.Max < c.Scale.Min:
		return fmt.Errorf("%w: scale.max must be greater than scale.min", ErrInvalidConfig)
	case c.Scale.Step < 0:
		return fmt.Errorf("%w: scale.step cannot be negative", ErrInvalidConfig)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size must be positive", ErrInvalidConfig)
	}
	if _, err := c.FitMode(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Keymap(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Limits returns the scale limits of the viewer.
func (c *Config) Limits() pivot.Limits {
	return pivot.Limits{Min: c.Scale.Min, Max: c.Scale.Max, Step: c.Scale.Step}
}

// FitMode returns the default fit mode.
func (c *Config) FitMode() (pivot.FitMode, error) {
	return pivot.ParseFitMode(c.Fit)
}

// BackgroundColor returns the color of the viewport areas not covered by the image.
func (c *Config) BackgroundColor() (color.NRGBA, error) {
	return utils.HexToRGBA(c.Background)
}

// Keymap parses the key bindings.
func (c *Config) Keymap() (map[string]pivot.Action, error) {
	keymap := make(map[string]pivot.Action, len(c.Keys))
	for k, s := range c.Keys {
		a, err := pivot.ParseAction(s)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		keymap[k] = a
	}
	return keymap, nil
}
