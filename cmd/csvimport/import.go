// Package csvimport imports transactions from a CSV file
package csvimport

import (
	"errors"
	"fmt"

	"fjacquet/daily-dollar/cmd/root"
	"fjacquet/daily-dollar/internal/store"

	"github.com/spf13/cobra"
)

var input string

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import transactions from a CSV file",
	Long: `Import transactions from a CSV file with a header line and rows of
Date,Note,Amount,Category where the date is MM/dd/yy. Amounts are recorded as
positive spending. Unknown categories are created with a budget of 0. Rows
that cannot be parsed are skipped and reported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := root.Service().ImportFile(cmd.Context(), input)
		var perr *store.PersistError
		if err != nil && !errors.As(err, &perr) {
			return fmt.Errorf("import failed: %w", err)
		}
		if renderErr := root.Reports().Import(cmd.OutOrStdout(), res, root.Format()); renderErr != nil {
			return renderErr
		}
		return err
	},
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file to import")
	_ = Cmd.MarkFlagRequired("input")
}
