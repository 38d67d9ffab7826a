package cmd

import (
	"encoding/csv"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/qvd"
)

var headRows int

// catCmd represents the cat command
var catCmd = &cobra.Command{
	Use:   "cat <file>",
	Short: "Print the rows of a QVD file as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := qvd.ReadFile(args[0], decoderOptions()...)
		if err != nil {
			return err
		}

		if headRows >= 0 {
			tbl = tbl.Head(headRows)
		}

		w := csv.NewWriter(cmd.OutOrStdout())
		if err := w.Write(tbl.Columns()); err != nil {
			return err
		}

		record := make([]string, tbl.ColumnCount())
		for _, row := range tbl.Rows() {
			for c, cell := range row {
				record[c] = fmt.Sprint(cell)
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		w.Flush()

		return w.Error()
	},
}

func init() {
	catCmd.Flags().IntVar(&headRows, "head", -1, "print only the first N rows")
	rootCmd.AddCommand(catCmd)
}
