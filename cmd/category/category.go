// Package category manages budget categories
package category

import (
	"fjacquet/daily-dollar/cmd/common"
	"fjacquet/daily-dollar/cmd/root"
	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the category command
var Cmd = &cobra.Command{
	Use:   "category",
	Short: "List, add, update and delete categories",
	Long: `Manage categories. Commands taking a category accept its id or its exact
name. A category whose name contains "income" counts as income; the first one
whose name contains "savings" is the savings category.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with their ids and budgets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var categories []models.Category
		if err := root.Service().Read(func(l *ledger.Ledger) {
			categories = l.Categories()
		}); err != nil {
			return err
		}
		return root.Reports().Categories(cmd.OutOrStdout(), categories, root.Format())
	},
}

var addCmd = &cobra.Command{
	Use:   "add NAME BUDGET",
	Short: "Add a category with a per-period budget",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		budget, err := common.ParseAmount(args[1])
		if err != nil {
			return err
		}
		c, err := root.Service().AddCategory(cmd.Context(), args[0], budget)
		if err != nil {
			return err
		}
		root.Printf(cmd.OutOrStdout(), "Added category %s (%s) with a budget of %s\n", c.Name, c.ID, report.FormatMoney(c.Budget))
		return nil
	},
}

var (
	newName   string
	newBudget string
)

var updateCmd = &cobra.Command{
	Use:   "update CATEGORY",
	Short: "Rename a category or change its budget",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := root.Service()
		c, err := common.ResolveCategory(svc, args[0])
		if err != nil {
			return err
		}
		name, budget := c.Name, c.Budget
		if cmd.Flags().Changed("name") {
			name = newName
		}
		if cmd.Flags().Changed("budget") {
			if budget, err = common.ParseAmount(newBudget); err != nil {
				return err
			}
		}
		ok, err := svc.UpdateCategory(cmd.Context(), c.ID, name, budget)
		if err != nil {
			return err
		}
		if err := common.NotFound(ok, "category", args[0]); err != nil {
			return err
		}
		root.Printf(cmd.OutOrStdout(), "Updated category %s: %s\n", name, report.FormatMoney(budget))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete CATEGORY",
	Short: "Delete a category; its transactions are kept as \"" + models.UnknownCategoryName + "\"",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := root.Service()
		c, err := common.ResolveCategory(svc, args[0])
		if err != nil {
			return err
		}
		ok, err := svc.DeleteCategory(cmd.Context(), c.ID)
		if err != nil {
			return err
		}
		if err := common.NotFound(ok, "category", args[0]); err != nil {
			return err
		}
		root.Printf(cmd.OutOrStdout(), "Deleted category %s\n", c.Name)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&newName, "name", "", "New name")
	updateCmd.Flags().StringVar(&newBudget, "budget", "", "New per-period budget")
	Cmd.AddCommand(listCmd, addCmd, updateCmd, deleteCmd)
}
