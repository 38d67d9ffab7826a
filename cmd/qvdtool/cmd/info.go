package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/qvd/table"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print table-level metadata of a QVD file",
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

		layout := decoder.Layout()
		fmt.Printf("Table name:      %s\n", layout.TableName)
		fmt.Printf("Columns:         %d\n", len(layout.Fields))
		fmt.Printf("Rows:            %d\n", layout.RowCount)
		fmt.Printf("Record size:     %d bytes\n", layout.RecordByteSize)
		fmt.Printf("Symbol region:   %d bytes\n", layout.SymbolRegionLength)
		fmt.Printf("Index region:    %d bytes\n", layout.IndexRegionLength)

		return nil
	},
}

func decoderOptions() []table.DecoderOption {
	if latin1 {
		return []table.DecoderOption{table.WithLatin1Strings()}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
