package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/jsvensson/paletteshift/internal/ciecam02"
	"github.com/jsvensson/paletteshift/internal/color"
	"github.com/jsvensson/paletteshift/internal/compensate"
)

var (
	flagVerbose   int
	flagLuminance float64
	flagSurround  string
	flagWorkers   int
	version       = "dev" // Injected at build time via ldflags
)

var log = commonlog.GetLogger("paletteshift")

var rootCmd = &cobra.Command{
	Use:           "paletteshift",
	Short:         "Keep a color palette looking the same on a different background",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(flagVerbose, nil)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")
	rootCmd.AddCommand(versionCmd)
}

// addViewingFlags registers the viewing environment flags on cmd.
func addViewingFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&flagLuminance, "luminance", compensate.DefaultAdaptingLuminance, "adapting luminance La in cd/m²")
	cmd.Flags().StringVar(&flagSurround, "surround", ciecam02.Average.String(), "surround: average, dim or dark")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "concurrent workers (0 = GOMAXPROCS)")
}

// applyViewingFlags overrides comp with the viewing flags the user set.
// When all is true, every flag applies, set or not.
func applyViewingFlags(cmd *cobra.Command, comp *compensate.Compensator, all bool) error {
	if all || cmd.Flags().Changed("luminance") {
		if flagLuminance <= 0 {
			return fmt.Errorf("--luminance must be positive, got %g", flagLuminance)
		}
		comp.AdaptingLuminance = flagLuminance
	}
	if all || cmd.Flags().Changed("surround") {
		s, err := ciecam02.ParseSurround(flagSurround)
		if err != nil {
			return err
		}
		comp.Surround = s
	}
	comp.Workers = flagWorkers
	return nil
}

func parseColorFlag(name, value string) (color.Color, error) {
	if value == "" {
		return color.Color{}, fmt.Errorf("--%s is required", name)
	}
	c, err := color.Parse(value)
	if err != nil {
		return color.Color{}, fmt.Errorf("--%s: %w", name, err)
	}
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
