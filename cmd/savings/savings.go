// Package savings shows the savings category balance
package savings

import (
	"fjacquet/daily-dollar/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the savings command
var Cmd = &cobra.Command{
	Use:   "savings",
	Short: "Show the savings balance and its deposits and withdrawals",
	Long: `Show the savings balance. The savings category is the first category whose
name contains "savings"; withdraw from it with "transaction withdraw".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := root.Service()
		sv, err := svc.Savings()
		if err != nil {
			return err
		}
		return root.Reports().Savings(cmd.OutOrStdout(), sv, svc.CategoryName, root.Format())
	},
}
