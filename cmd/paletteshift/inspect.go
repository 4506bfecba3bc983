package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jsvensson/paletteshift/internal/color"
	"github.com/jsvensson/paletteshift/internal/compensate"
)

var flagBackground string

var inspectCmd = &cobra.Command{
	Use:   "inspect COLOR",
	Short: "Print the appearance of a color against a background",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&flagBackground, "bg", "", "background the color is seen against (required)")
	addViewingFlags(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	c, err := color.Parse(args[0])
	if err != nil {
		return err
	}
	bg, err := parseColorFlag("bg", flagBackground)
	if err != nil {
		return err
	}

	comp := compensate.New()
	if err := applyViewingFlags(cmd, comp, true); err != nil {
		return err
	}
	a, err := comp.Inspect(c, bg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "color\t%s\t%s\n", c.Hex(), c.OKLCH())
	fmt.Fprintf(w, "background\t%s\t\n", bg.Hex())
	fmt.Fprintf(w, "lightness J\t%.2f\t\n", a.J)
	fmt.Fprintf(w, "chroma C\t%.2f\t\n", a.C)
	fmt.Fprintf(w, "hue h\t%.2f\t\n", a.H)
	fmt.Fprintf(w, "hue quadrature H\t%.2f\t\n", a.HueQuadrature)
	fmt.Fprintf(w, "brightness Q\t%.2f\t\n", a.Q)
	fmt.Fprintf(w, "colorfulness M\t%.2f\t\n", a.M)
	fmt.Fprintf(w, "saturation s\t%.2f\t\n", a.S)
	return w.Flush()
}
