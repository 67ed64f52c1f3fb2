package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/esimov/pivot"
	"github.com/esimov/pivot/utils"
	"github.com/spf13/cobra"
)

var renderOpts struct {
	source      string
	destination string
	viewport    string
	actions     []string
	fit         string
	face        bool
	faceScale   float64
	cascade     string
	bg          string
	workers     int
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the visible viewport into an image file",
	Long: `Load the image into a viewport, apply the actions in order and save
what the viewport displays. The source can be an image file, a directory
(processed concurrently), an URL or "-" for stdin.

Actions:
  zoom-in, zoom-out, actual-size, scale:1.5, scale:150%,
  rotate:-10, rotation:90, rotation:left|right|up|down,
  fit, fit:width, fit:height, click:0.25,0.25, zoom-to:0.5,0.5,
  pan:10,0, resize:1024x768, wheel:120,-40, handle:0,-100`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		proc, err := newProcessor()
		if err != nil {
			return err
		}
		return proc.Execute(&pivot.Ops{
			Src:      renderOpts.source,
			Dst:      renderOpts.destination,
			PipeName: pipeName,
			Workers:  renderOpts.workers,
		})
	},
}

func init() {
	flags := renderCmd.Flags()
	flags.StringVarP(&renderOpts.source, "in", "i", pipeName, "Source image, directory or URL")
	flags.StringVarP(&renderOpts.destination, "out", "o", pipeName, "Destination image or directory")
	flags.StringVar(&renderOpts.viewport, "viewport", "", "Viewport size as WxH (defaults to the image size)")
	flags.StringArrayVar(&renderOpts.actions, "do", nil, "Action applied to the viewer (repeatable)")
	flags.StringVar(&renderOpts.fit, "fit", "", "Initial fit mode: contain, width or height")
	flags.BoolVar(&renderOpts.face, "face", false, "Zoom on the dominant face")
	flags.Float64Var(&renderOpts.faceScale, "face-scale", 1, "Scale used when zooming on the dominant face")
	flags.StringVar(&renderOpts.cascade, "cc", "", "Cascade classifier used for face detection (defaults to the bundled one)")
	flags.StringVar(&renderOpts.bg, "bg", "", "Background color (e.g. #202020)")
	flags.IntVar(&renderOpts.workers, "conc", runtime.NumCPU(), "Number of files to process concurrently")

	rootCmd.AddCommand(renderCmd)
}

// newProcessor builds the render processor from the configuration and the command flags.
func newProcessor() (*pivot.Processor, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if renderOpts.bg != "" {
		cfg.Background = renderOpts.bg
	}
	if renderOpts.fit != "" {
		cfg.Fit = renderOpts.fit
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bg, _ := cfg.BackgroundColor()
	mode, _ := cfg.FitMode()

	proc := &pivot.Processor{
		Limits:     cfg.Limits(),
		Fit:        mode,
		Background: bg,
		FaceScale:  renderOpts.faceScale,
	}
	if renderOpts.viewport != "" {
		if proc.Viewport, err = parseViewport(renderOpts.viewport); err != nil {
			return nil, err
		}
	}
	if proc.Actions, err = pivot.ParseActions(renderOpts.actions); err != nil {
		return nil, err
	}
	if renderOpts.face {
		if proc.FaceDetector, err = faceDetector(renderOpts.cascade); err != nil {
			return nil, err
		}
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ PIVOT", utils.StatusMessage),
		utils.DecorateText("is rendering the image...", utils.DefaultMessage))
	proc.Spinner = utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	return proc, nil
}
