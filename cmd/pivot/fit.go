package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/esimov/pivot"
	"github.com/esimov/pivot/utils"
	"github.com/spf13/cobra"
)

var fitOpts struct {
	viewport string
	rotate   float64
}

var fitCmd = &cobra.Command{
	Use:   "fit <image>",
	Short: "Print the scales fitting the image into a viewport",
	Long: `Print the contain, width and height fit scales of the image, rotated by
the requested angle, without decoding the image pixels.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		viewport, err := parseViewport(fitOpts.viewport)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("unable to open the source file: %w", err)
		}
		defer f.Close()

		natural, format, err := pivot.DecodeSize(f)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "image\t%gx%g (%s)\n", natural.Width, natural.Height, format)
		fmt.Fprintf(w, "viewport\t%gx%g\n", viewport.Width, viewport.Height)
		fmt.Fprintf(w, "rotation\t%g°\n", fitOpts.rotate)
		for _, mode := range []pivot.FitMode{pivot.FitContain, pivot.FitWidth, pivot.FitHeight} {
			s, err := pivot.FitScale(natural, fitOpts.rotate, viewport, mode)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%g\t%s\n", mode, s, utils.FormatPercent(s))
		}
		return w.Flush()
	},
}

func init() {
	fitCmd.Flags().StringVar(&fitOpts.viewport, "viewport", "800x600", "Viewport size as WxH")
	fitCmd.Flags().Float64Var(&fitOpts.rotate, "rotate", 0, "Image rotation in degrees")

	rootCmd.AddCommand(fitCmd)
}
