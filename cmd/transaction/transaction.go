// Package transaction records, edits and lists transactions
package transaction

import (
	"fmt"

	"fjacquet/daily-dollar/cmd/common"
	"fjacquet/daily-dollar/cmd/root"
	"fjacquet/daily-dollar/internal/dateutils"
	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the transaction command
var Cmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"tx"},
	Short:   "Add, update, delete and list transactions",
	Long: `Record spending and income. Amounts booked against an income category count
as income; everything else counts as spending.`,
}

var (
	note     string
	date     string
	amount   string
	category string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current period's transactions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := root.Service()
		var (
			txs   []models.Transaction
			title string
		)
		if category != "" {
			c, err := common.ResolveCategory(svc, category)
			if err != nil {
				return err
			}
			title = c.Name
			if err := svc.Read(func(l *ledger.Ledger) { txs = l.CategoryTransactionsCurrent(c.ID) }); err != nil {
				return err
			}
		} else if err := svc.Read(func(l *ledger.Ledger) {
			p := l.CurrentPeriod()
			txs = l.PeriodTransactions(p.Start, p.End)
			title = fmt.Sprintf("Period starting %s", dateutils.ToISODate(p.Start))
		}); err != nil {
			return err
		}
		return root.Reports().Transactions(cmd.OutOrStdout(), title, txs, svc.CategoryName, root.Format())
	},
}

var addCmd = &cobra.Command{
	Use:   "add AMOUNT CATEGORY",
	Short: "Record a transaction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := root.Service()
		value, err := common.ParseAmount(args[0])
		if err != nil {
			return err
		}
		c, err := common.ResolveCategory(svc, args[1])
		if err != nil {
			return err
		}
		when, err := common.ParseDate(svc, date)
		if err != nil {
			return err
		}
		tx, err := svc.AddTransaction(cmd.Context(), value, when, note, c.ID)
		if err != nil {
			return err
		}
		root.Printf(cmd.OutOrStdout(), "Recorded %s in %s on %s (%s)\n",
			report.FormatMoney(tx.Amount), c.Name, dateutils.ToISODate(tx.Date), tx.ID)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change a transaction's amount, date, note or category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := root.Service()
		tx, err := common.FindTransaction(svc, args[0])
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("amount") {
			if tx.Amount, err = common.ParseAmount(amount); err != nil {
				return err
			}
		}
		if flags.Changed("date") {
			if tx.Date, err = common.ParseDate(svc, date); err != nil {
				return err
			}
		}
		if flags.Changed("note") {
			tx.Note = note
		}
		if flags.Changed("category") {
			c, err := common.ResolveCategory(svc, category)
			if err != nil {
				return err
			}
			tx.CategoryID = c.ID
		}
		ok, err := svc.UpdateTransaction(cmd.Context(), tx)
		if err != nil {
			return err
		}
		if err := common.NotFound(ok, "transaction", tx.ID); err != nil {
			return err
		}
		root.Printf(cmd.OutOrStdout(), "Updated transaction %s\n", tx.ID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := root.Service().DeleteTransaction(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := common.NotFound(ok, "transaction", args[0]); err != nil {
			return err
		}
		root.Printf(cmd.OutOrStdout(), "Deleted transaction %s\n", args[0])
		return nil
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw AMOUNT",
	Short: "Withdraw from savings",
	Long:  `Withdraw from savings by recording a negative transaction against the savings category.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := root.Service()
		value, err := common.ParseAmount(args[0])
		if err != nil {
			return err
		}
		when, err := common.ParseDate(svc, date)
		if err != nil {
			return err
		}
		tx, ok, err := svc.WithdrawFromSavings(cmd.Context(), value, when, note)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no savings category: add a category whose name contains \"savings\"")
		}
		root.Printf(cmd.OutOrStdout(), "Withdrew %s from savings (%s)\n", report.FormatMoney(tx.Amount.Abs()), tx.ID)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{addCmd, updateCmd, withdrawCmd} {
		c.Flags().StringVarP(&note, "note", "n", "", "Note")
		c.Flags().StringVarP(&date, "date", "d", "", "Date as YYYY-MM-DD (default today)")
	}
	updateCmd.Flags().StringVarP(&amount, "amount", "a", "", "New amount")
	updateCmd.Flags().StringVarP(&category, "category", "c", "", "New category id or name")
	listCmd.Flags().StringVarP(&category, "category", "c", "", "Only this category")

	Cmd.AddCommand(listCmd, addCmd, updateCmd, deleteCmd, withdrawCmd)
}
