// Package history lists past pay periods
package history

import (
	"fmt"

	"fjacquet/daily-dollar/cmd/root"
	"fjacquet/daily-dollar/internal/ledger"

	"github.com/spf13/cobra"
)

var periods int

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "List past periods' transactions and the last year's spending per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if periods < 1 {
			return fmt.Errorf("--periods must be at least 1")
		}
		svc := root.Service()
		h, err := svc.History(periods)
		if err != nil {
			return err
		}
		return root.Reports().History(cmd.OutOrStdout(), h, svc.CategoryName, root.Format())
	},
}

func init() {
	Cmd.Flags().IntVarP(&periods, "periods", "n", ledger.DefaultHistoryPeriods, "How many periods to look back")
}
