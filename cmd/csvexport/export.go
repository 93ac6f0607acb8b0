// Package csvexport writes every transaction to a CSV file
package csvexport

import (
	"fmt"
	"unicode/utf8"

	"fjacquet/daily-dollar/cmd/root"

	"github.com/spf13/cobra"
)

var (
	output    string
	delimiter string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export every transaction to a CSV file",
	Long: `Export every transaction as Date,Note,Amount,Category using the same MM/dd/yy
date layout the import command reads. The delimiter defaults to csv.delimiter
from the configuration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		delim := root.Config().Delimiter()
		if delimiter != "" {
			if utf8.RuneCountInString(delimiter) != 1 {
				return fmt.Errorf("--delimiter must be a single character, got %q", delimiter)
			}
			delim, _ = utf8.DecodeRuneInString(delimiter)
		}
		if err := root.Service().ExportFile(output, delim); err != nil {
			return err
		}
		root.Printf(cmd.OutOrStdout(), "Transactions exported to %s\n", output)
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "CSV file to write")
	Cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "Field delimiter (default from configuration)")
	_ = Cmd.MarkFlagRequired("output")
}
