// Package expected manages one-off expected expenses and income for the
// forecast
package expected

import (
	"fjacquet/daily-dollar/cmd/common"
	"fjacquet/daily-dollar/cmd/root"
	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/report"

	"github.com/spf13/cobra"
)

var income bool

// Cmd represents the expected command
var Cmd = &cobra.Command{
	Use:   "expected",
	Short: "Manage expected one-off expenses and income for the next period",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List expected expenses and income",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var expenses, incomes []models.ExpectedItem
		if err := root.Service().Read(func(l *ledger.Ledger) {
			expenses, incomes = l.ExpectedExpenses(), l.ExpectedIncome()
		}); err != nil {
			return err
		}
		return root.Reports().Expected(cmd.OutOrStdout(), expenses, incomes, root.Format())
	},
}

var addCmd = &cobra.Command{
	Use:   "add AMOUNT NOTE",
	Short: "Add an expected expense, or income with --income",
	Long:  `Add an expected expense, or income with --income. The amount is stored as its absolute value.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := common.ParseAmount(args[0])
		if err != nil {
			return err
		}
		svc := root.Service()
		kind := "expense"
		var item models.ExpectedItem
		if income {
			kind = "income"
			item, err = svc.AddExpectedIncome(cmd.Context(), amount, args[1])
		} else {
			item, err = svc.AddExpectedExpense(cmd.Context(), amount, args[1])
		}
		if err != nil {
			return err
		}
		root.Printf(cmd.OutOrStdout(), "Added expected %s %s of %s (%s)\n", kind, item.Note, report.FormatMoney(item.Amount), item.ID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an expected expense, or income with --income",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := root.Service()
		var (
			ok  bool
			err error
		)
		if income {
			ok, err = svc.DeleteExpectedIncome(cmd.Context(), args[0])
		} else {
			ok, err = svc.DeleteExpectedExpense(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}
		if err := common.NotFound(ok, "expected item", args[0]); err != nil {
			return err
		}
		root.Printf(cmd.OutOrStdout(), "Deleted expected item %s\n", args[0])
		return nil
	},
}

func init() {
	addCmd.Flags().BoolVar(&income, "income", false, "Expected income instead of an expense")
	deleteCmd.Flags().BoolVar(&income, "income", false, "Delete from expected income instead of expenses")
	Cmd.AddCommand(listCmd, addCmd, deleteCmd)
}
