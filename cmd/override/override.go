// Package override sets next-period budgets used by the forecast
package override

import (
	"fjacquet/daily-dollar/cmd/common"
	"fjacquet/daily-dollar/cmd/root"
	"fjacquet/daily-dollar/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the override command
var Cmd = &cobra.Command{
	Use:   "override",
	Short: "Set or clear a category's budget for the next period's forecast",
	Long: `Set or clear a category's budget for the next period's forecast. The current
period keeps using the category's own budget.`,
}

var setCmd = &cobra.Command{
	Use:   "set CATEGORY BUDGET",
	Short: "Use BUDGET for CATEGORY in the forecast",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := root.Service()
		c, err := common.ResolveCategory(svc, args[0])
		if err != nil {
			return err
		}
		budget, err := common.ParseAmount(args[1])
		if err != nil {
			return err
		}
		ok, err := svc.SetForecastOverride(cmd.Context(), c.ID, budget)
		if err != nil {
			return err
		}
		if err := common.NotFound(ok, "category", args[0]); err != nil {
			return err
		}
		root.Printf(cmd.OutOrStdout(), "Forecast budget for %s set to %s\n", c.Name, report.FormatMoney(budget))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear CATEGORY",
	Short: "Forecast CATEGORY with its regular budget again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := root.Service()
		c, err := common.ResolveCategory(svc, args[0])
		if err != nil {
			return err
		}
		if _, err := svc.ClearForecastOverride(cmd.Context(), c.ID); err != nil {
			return err
		}
		root.Printf(cmd.OutOrStdout(), "Forecast budget for %s reset to %s\n", c.Name, report.FormatMoney(c.Budget))
		return nil
	},
}

func init() {
	Cmd.AddCommand(setCmd, clearCmd)
}
