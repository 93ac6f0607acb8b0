// Package setup records the beginning balance and paycheck
package setup

import (
	"fmt"

	"fjacquet/daily-dollar/cmd/common"
	"fjacquet/daily-dollar/cmd/root"
	"fjacquet/daily-dollar/internal/report"

	"github.com/spf13/cobra"
)

var (
	balance  string
	paycheck string
	payday   int
)

// Cmd represents the setup command
var Cmd = &cobra.Command{
	Use:   "setup",
	Short: "Set the beginning balance, paycheck amount and paycheck day",
	Long: `Set the beginning balance of the current period and the paycheck. Only the
flags given are changed. A paycheck day of 29 to 31 is paid on the last day of
shorter months.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("balance") && !flags.Changed("paycheck") && !flags.Changed("day") {
			return fmt.Errorf("nothing to set: use --balance, --paycheck or --day")
		}

		svc := root.Service()
		st, err := svc.Status()
		if err != nil {
			return err
		}

		if flags.Changed("balance") {
			amount, err := common.ParseAmount(balance)
			if err != nil {
				return err
			}
			if err := svc.SetBeginningBalance(cmd.Context(), amount); err != nil {
				return err
			}
			root.Printf(cmd.OutOrStdout(), "Beginning balance set to %s\n", report.FormatMoney(amount))
		}

		if flags.Changed("paycheck") || flags.Changed("day") {
			amount, day := st.Paycheck, st.PaycheckDay
			if flags.Changed("paycheck") {
				if amount, err = common.ParseAmount(paycheck); err != nil {
					return err
				}
			}
			if flags.Changed("day") {
				day = payday
			}
			if err := svc.SetPaycheck(cmd.Context(), amount, day); err != nil {
				return err
			}
			root.Printf(cmd.OutOrStdout(), "Paycheck set to %s on the %s\n", report.FormatMoney(amount), report.FormatDay(day))
		}
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&balance, "balance", "b", "", "Beginning balance of the current period")
	Cmd.Flags().StringVarP(&paycheck, "paycheck", "p", "", "Paycheck amount")
	Cmd.Flags().IntVar(&payday, "day", 1, "Paycheck day of the month (1-31)")
}
