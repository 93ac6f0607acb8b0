// Package status shows the current pay period
package status

import (
	"fjacquet/daily-dollar/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the status command
var Cmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current period: balance, spending and category budgets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := root.Service().Status()
		if err != nil {
			return err
		}
		return root.Reports().Status(cmd.OutOrStdout(), st, root.Format())
	},
}
