package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jsvensson/paletteshift"
	"github.com/jsvensson/paletteshift/internal/color"
	"github.com/jsvensson/paletteshift/internal/dtcg"
	"github.com/jsvensson/paletteshift/internal/engine"
	"github.com/jsvensson/paletteshift/internal/format"
)

var (
	flagFile      string
	flagTemplates string
	flagOut       string
	flagApp       []string
	flagJSON      string
	flagHCL       string
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Compensate a palette document and write the results",
	Long: `Compensate every color of a palette document from its source to its
target background. Without --templates, --json or --hcl the compensated
palette is printed as a table.`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&flagFile, "file", "f", "palette.hcl", "path to palette HCL file")
	applyCmd.Flags().StringVar(&flagTemplates, "templates", "", "templates directory to render")
	applyCmd.Flags().StringVar(&flagOut, "out", "output", "output directory for rendered templates")
	applyCmd.Flags().StringArrayVar(&flagApp, "app", nil, "render only specific templates (can be repeated)")
	applyCmd.Flags().StringVar(&flagJSON, "json", "", "write DTCG design tokens to this file")
	applyCmd.Flags().StringVar(&flagHCL, "hcl", "", "write the compensated palette document to this file")
	applyCmd.Flags().StringVar(&flagFormat, "format", "hex", "color notation for table and HCL output")
	addViewingFlags(applyCmd)
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	notation, err := color.ParseNotation(flagFormat)
	if err != nil {
		return err
	}

	doc, err := paletteshift.Load(flagFile)
	if err != nil {
		return err
	}
	log.Infof("loaded %s: %d colors, %s -> %s", flagFile, doc.Palette.Len(), doc.Source.Hex(), doc.Target.Hex())

	// Flags the user set override the document's viewing block.
	comp := doc.Compensator()
	if err := applyViewingFlags(cmd, comp, false); err != nil {
		return err
	}

	res, err := doc.Apply(cmd.Context(), comp)
	if err != nil {
		return err
	}

	wrote := false
	if flagTemplates != "" {
		e := &engine.Engine{
			TemplatesDir: flagTemplates,
			OutputDir:    flagOut,
			Apps:         flagApp,
		}
		if err := e.Run(res); err != nil {
			return fmt.Errorf("rendering templates: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered templates in %s\n", flagOut)
		wrote = true
	}

	if flagJSON != "" {
		data, err := dtcg.Marshal(res)
		if err != nil {
			return err
		}
		if err := os.WriteFile(flagJSON, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", flagJSON, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote design tokens to %s\n", flagJSON)
		wrote = true
	}

	if flagHCL != "" {
		if err := os.WriteFile(flagHCL, format.Palette(res, notation), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", flagHCL, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote palette to %s\n", flagHCL)
		wrote = true
	}

	if wrote {
		return nil
	}
	return printResult(cmd, res, notation)
}

func printResult(cmd *cobra.Command, res *paletteshift.Result, n color.Notation) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "PATH\t%s\t%s\n", res.Source.Hex(), res.Target.Hex())
	for _, e := range res.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Path, e.Original.Format(n), e.Compensated.Format(n))
	}
	return w.Flush()
}
