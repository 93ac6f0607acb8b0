// Package forecast projects the next pay period
package forecast

import (
	"fjacquet/daily-dollar/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the forecast command
var Cmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project the balance at the end of the next period",
	Long: `Project the balance at the end of the next period from the current
rollover, the paycheck, next-period category budgets (see "override") and
expected one-off expenses and income (see "expected").`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := root.Service().Forecast()
		if err != nil {
			return err
		}
		return root.Reports().Forecast(cmd.OutOrStdout(), summary, root.Format())
	},
}
