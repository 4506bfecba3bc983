package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsvensson/paletteshift/internal/color"
	"github.com/jsvensson/paletteshift/internal/compensate"
)

var (
	flagFrom      string
	flagTo        string
	flagFormat    string
	flagKeepGoing bool
)

var compensateCmd = &cobra.Command{
	Use:   "compensate COLOR...",
	Short: "Move colors from one background to another",
	Long: `Compensate one or more colors for a change of background so they keep
their lightness, chroma and hue as perceived against the new background.
Prints one color per line, in input order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompensate,
}

func init() {
	compensateCmd.Flags().StringVar(&flagFrom, "from", "", "background the colors were designed on (required)")
	compensateCmd.Flags().StringVar(&flagTo, "to", "", "background the colors will be shown on (required)")
	compensateCmd.Flags().StringVar(&flagFormat, "format", "hex", "output notation: hex, rgb, oklch or oklab")
	compensateCmd.Flags().BoolVar(&flagKeepGoing, "keep-going", false, "report failing colors and continue with the rest")
	addViewingFlags(compensateCmd)
	rootCmd.AddCommand(compensateCmd)
}

func runCompensate(cmd *cobra.Command, args []string) error {
	from, err := parseColorFlag("from", flagFrom)
	if err != nil {
		return err
	}
	to, err := parseColorFlag("to", flagTo)
	if err != nil {
		return err
	}
	notation, err := color.ParseNotation(flagFormat)
	if err != nil {
		return err
	}

	colors := make([]color.Color, len(args))
	for i, arg := range args {
		if colors[i], err = color.Parse(arg); err != nil {
			return err
		}
	}

	comp := compensate.New()
	if err := applyViewingFlags(cmd, comp, true); err != nil {
		return err
	}
	log.Infof("compensating %d colors from %s to %s", len(colors), from.Hex(), to.Hex())

	out := cmd.OutOrStdout()
	if !flagKeepGoing {
		shifted, err := comp.CompensateBatch(cmd.Context(), colors, from, to)
		if err != nil {
			return err
		}
		for _, c := range shifted {
			fmt.Fprintln(out, c.Format(notation))
		}
		return nil
	}

	failed := 0
	for i, res := range comp.CompensateEach(cmd.Context(), colors, from, to) {
		if res.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", args[i], res.Err)
			failed++
			continue
		}
		fmt.Fprintln(out, res.Color.Format(notation))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d colors could not be compensated", failed, len(colors))
	}
	return nil
}
