package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"github.com/esimov/pivot"
	"github.com/esimov/pivot/utils"
	"github.com/spf13/cobra"
)

var viewOpts struct {
	face    bool
	cascade string
	bg      string
}

var viewCmd = &cobra.Command{
	Use:   "view <image|url>",
	Short: "Open the image in a window",
	Long: `Open the image in a window fitted into the viewport.

Click toggles between the fitted and the natural size around the pointer,
drag pans the image, the mouse wheel zooms around the pointer and the right
button rotates the image toward the pointer. Key bindings are read from
the configuration file. Press ESC to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if viewOpts.bg != "" {
			cfg.Background = viewOpts.bg
		}
		bg, err := cfg.BackgroundColor()
		if err != nil {
			return err
		}
		keymap, err := cfg.Keymap()
		if err != nil {
			return err
		}
		mode, err := cfg.FitMode()
		if err != nil {
			return err
		}

		img, err := pivot.Open(args[0])
		if err != nil {
			return err
		}

		opts := []pivot.GuiOption{
			pivot.WithBackground(bg),
			pivot.WithMaxWindowSize(cfg.Window.Width, cfg.Window.Height),
			pivot.WithFitMode(mode),
		}
		if viewOpts.face {
			fd, err := faceDetector(viewOpts.cascade)
			if err != nil {
				return err
			}
			faces := fd.Detect(img)
			log.Printf("%s %s",
				utils.DecorateText("⚡ PIVOT", utils.StatusMessage),
				utils.DecorateText(fmt.Sprintf("%d face(s) detected", len(faces)), utils.DefaultMessage),
			)
			opts = append(opts, pivot.WithFaces(faces))
		}

		gui := pivot.NewGUI(img, "pivot - "+filepath.Base(args[0]), keymap, cfg.Limits(), opts...)

		go func() {
			if err := gui.Run(); err != nil {
				log.Fatal(decorateError(err))
			}
			os.Exit(0)
		}()
		app.Main()

		return nil
	},
}

func init() {
	viewCmd.Flags().BoolVar(&viewOpts.face, "face", false, "Outline the detected faces")
	viewCmd.Flags().StringVar(&viewOpts.cascade, "cc", "", "Cascade classifier used for face detection (defaults to the bundled one)")
	viewCmd.Flags().StringVar(&viewOpts.bg, "bg", "", "Background color (e.g. #202020)")

	rootCmd.AddCommand(viewCmd)
}

// faceDetector loads the cascade classifier used by the face detection.
func faceDetector(cascade string) (*pivot.FaceDetector, error) {
	if cascade == "" {
		return pivot.DefaultFaceDetector()
	}
	return pivot.LoadFaceDetector(cascade)
}

// decorateError formats the error the same way for every command.
func decorateError(err error) string {
	return utils.DecorateText("Error: ", utils.ErrorMessage) +
		utils.DecorateText(err.Error(), utils.DefaultMessage)
}
