package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jsvensson/paletteshift/internal/lsp"
)

var (
	flagVerbose int
	version     = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "pshift-lsp",
	Short:   "Language server for paletteshift palette files, speaking LSP over stdio",
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := lsp.NewServer(version)
		s.Verbosity = flagVerbose
		return s.Run()
	},
}

func init() {
	rootCmd.Flags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
