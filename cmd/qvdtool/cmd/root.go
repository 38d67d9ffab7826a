package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var latin1 bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "qvdtool",
	Short: "Inspect and export QlikView Data (QVD) files",
	Long: `qvdtool reads QVD files and prints their metadata or contents.

Examples:
  qvdtool info sales.qvd
  qvdtool fields sales.qvd
  qvdtool cat --head 20 sales.qvd`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&latin1, "latin1", false, "decode symbol strings as Latin-1 instead of UTF-8")
}
