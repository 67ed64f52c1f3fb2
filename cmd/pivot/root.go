package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/esimov/pivot"
	"github.com/esimov/pivot/config"
	"github.com/spf13/cobra"
)

// HelpBanner is shown in front of the command usage.
const HelpBanner = `
┌─┐┬┬  ┬┌─┐┌┬┐
├─┘│└┐┌┘│ │ │
┴  ┴ └┘ └─┘ ┴

Image viewport transform engine.
    Version: %s
`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version = "dev"

var (
	// Global flags
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "pivot",
	Short: "Zoom, rotate and pan images inside a scrollable viewport",
	Long: fmt.Sprintf(HelpBanner, Version) + `
Examples:
  pivot view photo.jpg                                 # Open the image in a window
  pivot render -i photo.jpg -o out.png --viewport 800x600 --do fit --do click:0.25,0.25
  pivot render -i photos/ -o thumbs/ --viewport 320x240 --face --cc facefinder
  pivot fit photo.jpg --viewport 800x600 --rotate 90   # Print the fit scales`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, decorateError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
}

// loadConfig returns the configuration file settings, or the defaults in case no file was provided.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// parseViewport parses the viewport size expressed as WxH, e.g. 800x600.
func parseViewport(s string) (pivot.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return pivot.Size{}, fmt.Errorf("invalid viewport %q, expected WxH", s)
	}
	width, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return pivot.Size{}, fmt.Errorf("invalid viewport width %q: %w", w, err)
	}
	height, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return pivot.Size{}, fmt.Errorf("invalid viewport height %q: %w", h, err)
	}
	size := pivot.Size{Width: width, Height: height}
	if !size.Valid() {
		return pivot.Size{}, fmt.Errorf("%w: %s", pivot.ErrInvalidViewport, s)
	}
	return size, nil
}
