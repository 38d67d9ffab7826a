package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/qvd/table"
)

// fieldsCmd represents the fields command
var fieldsCmd = &cobra.Command{
	Use:   "fields <file>",
	Short: "Print per-field symbol and bit layout metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		decoder, err := table.NewDecoder(data, decoderOptions()...)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSYMBOLS\tSYM OFFSET\tSYM LENGTH\tBIT OFFSET\tBIT WIDTH\tBIAS")
		for _, f := range decoder.Layout().Fields {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
				f.Name, f.SymbolCount, f.SymbolOffset, f.SymbolLength, f.BitOffset, f.BitWidth, f.Bias)
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
