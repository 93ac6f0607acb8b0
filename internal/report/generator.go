// Package report renders budget views for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"fjacquet/daily-dollar/internal/budget"
	"fjacquet/daily-dollar/internal/dateutils"
	"fjacquet/daily-dollar/internal/forecast"
	"fjacquet/daily-dollar/internal/importer"
	"fjacquet/daily-dollar/internal/logging"
	"fjacquet/daily-dollar/internal/models"

	"github.com/shopspring/decimal"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NameResolver maps a category id to a display name.
type NameResolver func(id string) string

// Generator renders reports in the text or JSON format.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a new instance of Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Generator{logger: logger.WithField(logging.FieldComponent, "report")}
}

// ValidFormat reports whether format is supported.
func ValidFormat(format string) bool {
	return format == FormatText || format == FormatJSON
}

func (g *Generator) write(w io.Writer, format string, view any, text func() string) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatText, "":
		_, err := io.WriteString(w, text())
		return err
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

type transactionView struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Note     string          `json:"note"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
}

func transactionViews(txs []models.Transaction, name NameResolver) []transactionView {
	views := make([]transactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, transactionView{
			ID:       tx.ID,
			Date:     dateutils.ToISODate(tx.Date),
			Note:     tx.Note,
			Amount:   tx.Amount,
			Category: name(tx.CategoryID),
		})
	}
	return views
}

func transactionRows(txs []transactionView) [][]string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{tx.Date, tx.Note, tx.Category, highlightNegative(tx.Amount)})
	}
	return rows
}

type categoryStatusView struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
	Spent  decimal.Decimal `json:"spent"`
	Left   decimal.Decimal `json:"left"`
}

type statusView struct {
	PeriodStart      string               `json:"periodStart"`
	PeriodEnd        string               `json:"periodEnd"`
	NeedsSetup       bool                 `json:"needsSetup"`
	BeginningBalance decimal.Decimal      `json:"beginningBalance"`
	Paycheck         decimal.Decimal      `json:"paycheckAmount"`
	PaycheckDay      int                  `json:"paycheckDay"`
	Spent            decimal.Decimal      `json:"spent"`
	Income           decimal.Decimal      `json:"income"`
	Remaining        decimal.Decimal      `json:"remaining"`
	Unallocated      decimal.Decimal      `json:"unallocatedBudget"`
	Rollover         decimal.Decimal      `json:"rollover"`
	Categories       []categoryStatusView `json:"categories"`
}

// Status renders the current period overview.
func (g *Generator) Status(w io.Writer, st budget.Status, format string) error {
	view := statusView{
		PeriodStart:      dateutils.ToISODate(st.Period.Start),
		PeriodEnd:        dateutils.ToISODate(st.Period.End),
		NeedsSetup:       st.NeedsSetup,
		BeginningBalance: st.BeginningBalance,
		Paycheck:         st.Paycheck,
		PaycheckDay:      st.PaycheckDay,
		Spent:            st.Spent,
		Income:           st.Income,
		Remaining:        st.Remaining,
		Unallocated:      st.Unallocated,
		Rollover:         st.Rollover,
		Categories:       make([]categoryStatusView, 0, len(st.Categories)),
	}
	for _, cs := range st.Categories {
		view.Categories = append(view.Categories, categoryStatusView{
			ID: cs.Category.ID, Name: cs.Category.Name, Budget: cs.Category.Budget, Spent: cs.Spent, Left: cs.Left,
		})
	}

	return g.write(w, format, view, func() string {
		out := RenderTitle(fmt.Sprintf("PERIOD %s to %s", view.PeriodStart, view.PeriodEnd)) + "\n"
		if view.NeedsSetup {
			out += muted("  New budget: run `daily-dollar setup` to enter your balance and paycheck.") + "\n"
		}
		out += RenderTable(Table{
			Rows: [][]string{
				{"Beginning balance", FormatMoney(view.BeginningBalance)},
				{"Paycheck", fmt.Sprintf("%s on the %s", FormatMoney(view.Paycheck), FormatDay(view.PaycheckDay))},
				{"Income", FormatMoney(view.Income)},
				{"Spent", FormatMoney(view.Spent)},
				{separatorRow},
				{"Remaining", highlightNegative(view.Remaining)},
				{"Unallocated budget", FormatMoney(view.Unallocated)},
				{"Rollover", highlightNegative(view.Rollover)},
			},
		})
		rows := make([][]string, 0, len(view.Categories))
		for _, c := range view.Categories {
			rows = append(rows, []string{c.Name, FormatMoney(c.Budget), FormatMoney(c.Spent), highlightNegative(c.Left)})
		}
		out += RenderTable(Table{Title: "Categories", Headers: []string{"Category", "Budget", "Spent", "Left"}, Rows: rows})
		return out
	})
}

type forecastLineView struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Budget     decimal.Decimal `json:"budget"`
	Overridden bool            `json:"overridden"`
}

type forecastView struct {
	NextPaycheckDate string             `json:"nextPaycheckDate"`
	Rollover         decimal.Decimal    `json:"rollover"`
	Paycheck         decimal.Decimal    `json:"paycheckAmount"`
	BudgetedExpenses decimal.Decimal    `json:"budgetedExpenses"`
	BudgetedIncome   decimal.Decimal    `json:"budgetedIncome"`
	TotalBudgeted    decimal.Decimal    `json:"totalBudgeted"`
	ExpectedExpenses decimal.Decimal    `json:"expectedExpenses"`
	ExpectedIncome   decimal.Decimal    `json:"expectedIncome"`
	ForecastedEnding decimal.Decimal    `json:"forecastedEnding"`
	Lines            []forecastLineView `json:"categories"`
}

// Forecast renders the next-period projection.
func (g *Generator) Forecast(w io.Writer, s forecast.Summary, format string) error {
	view := forecastView{
		NextPaycheckDate: dateutils.ToISODate(s.NextPaycheckDate),
		Rollover:         s.Rollover,
		Paycheck:         s.Paycheck,
		BudgetedExpenses: s.BudgetedExpenses,
		BudgetedIncome:   s.BudgetedIncome,
		TotalBudgeted:    s.TotalBudgeted,
		ExpectedExpenses: s.ExpectedExpenses,
		ExpectedIncome:   s.ExpectedIncome,
		ForecastedEnding: s.ForecastedEnding,
		Lines:            make([]forecastLineView, 0, len(s.Lines)),
	}
	for _, l := range s.Lines {
		view.Lines = append(view.Lines, forecastLineView{ID: l.Category.ID, Name: l.Category.Name, Budget: l.Budget, Overridden: l.Overridden})
	}

	return g.write(w, format, view, func() string {
		out := RenderTitle("FORECAST to " + view.NextPaycheckDate) + "\n"
		rows := make([][]string, 0, len(view.Lines))
		for _, l := range view.Lines {
			mark := ""
			if l.Overridden {
				mark = "override"
			}
			rows = append(rows, []string{l.Name, FormatMoney(l.Budget), mark})
		}
		out += RenderTable(Table{Title: "Next period budgets", Headers: []string{"Category", "Budget", ""}, Rows: rows})
		out += RenderTable(Table{
			Rows: [][]string{
				{"Rollover", highlightNegative(view.Rollover)},
				{"Paycheck", FormatMoney(view.Paycheck)},
				{"Budgeted expenses", FormatMoney(view.BudgetedExpenses)},
				{"Budgeted income", FormatMoney(view.BudgetedIncome)},
				{"Expected expenses", FormatMoney(view.ExpectedExpenses)},
				{"Expected income", FormatMoney(view.ExpectedIncome)},
				{separatorRow},
				{"Total budgeted", FormatMoney(view.TotalBudgeted)},
				{"Forecasted ending", highlightNegative(view.ForecastedEnding)},
			},
		})
		return out
	})
}

type periodView struct {
	Start        string            `json:"start"`
	End          string            `json:"end"`
	Transactions []transactionView `json:"transactions"`
}

type spendingView struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type historyView struct {
	Periods        []periodView   `json:"periods"`
	AnnualSpending []spendingView `json:"annualSpending"`
}

// History renders past periods and the trailing-year spending.
func (g *Generator) History(w io.Writer, h budget.History, name NameResolver, format string) error {
	view := historyView{
		Periods:        make([]periodView, 0, len(h.Periods)),
		AnnualSpending: make([]spendingView, 0, len(h.AnnualSpending)),
	}
	for _, p := range h.Periods {
		view.Periods = append(view.Periods, periodView{
			Start:        dateutils.ToISODate(p.Window.Start),
			End:          dateutils.ToISODate(p.Window.End),
			Transactions: transactionViews(p.Transactions, name),
		})
	}
	for _, s := range h.AnnualSpending {
		view.AnnualSpending = append(view.AnnualSpending, spendingView{Category: s.Category.Name, Amount: s.Amount})
	}

	return g.write(w, format, view, func() string {
		out := RenderTitle("HISTORY") + "\n"
		if len(view.Periods) == 0 {
			return out + muted("  No transactions recorded yet.") + "\n"
		}
		for _, p := range view.Periods {
			out += RenderTable(Table{
				Title:   p.Start + " to " + p.End,
				Headers: []string{"Date", "Note", "Category", "Amount"},
				Rows:    transactionRows(p.Transactions),
			})
		}
		rows := make([][]string, 0, len(view.AnnualSpending))
		for _, s := range view.AnnualSpending {
			rows = append(rows, []string{s.Category, FormatMoney(s.Amount)})
		}
		if len(rows) > 0 {
			out += RenderTable(Table{Title: "Spending over the last year", Headers: []string{"Category", "Amount"}, Rows: rows})
		}
		return out
	})
}

type savingsView struct {
	Category     string            `json:"category"`
	Total        decimal.Decimal   `json:"total"`
	Transactions []transactionView `json:"transactions"`
}

// Savings renders the savings balance and its movements. It fails when the
// budget has no savings category.
func (g *Generator) Savings(w io.Writer, sv budget.Savings, name NameResolver, format string) error {
	if !sv.Found {
		return fmt.Errorf("no savings category: add a category whose name contains \"savings\"")
	}
	view := savingsView{
		Category:     sv.Category.Name,
		Total:        sv.Total,
		Transactions: transactionViews(sv.Transactions, name),
	}
	return g.write(w, format, view, func() string {
		out := RenderTitle(fmt.Sprintf("%s: %s", view.Category, FormatMoney(view.Total))) + "\n"
		return out + RenderTable(Table{
			Headers: []string{"Date", "Note", "Category", "Amount"},
			Rows:    transactionRows(view.Transactions),
		})
	})
}

type categoryView struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
	Income bool            `json:"income"`
}

// Categories lists categories with their ids, which the edit commands take.
func (g *Generator) Categories(w io.Writer, categories []models.Category, format string) error {
	view := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		view = append(view, categoryView{ID: c.ID, Name: c.Name, Budget: c.Budget, Income: c.IsIncome()})
	}
	return g.write(w, format, view, func() string {
		rows := make([][]string, 0, len(view))
		for _, c := range view {
			rows = append(rows, []string{c.ID, c.Name, FormatMoney(c.Budget)})
		}
		return RenderTable(Table{Headers: []string{"ID", "Name", "Budget"}, Rows: rows})
	})
}

type expectedView struct {
	ID     string          `json:"id"`
	Note   string          `json:"note"`
	Amount decimal.Decimal `json:"amount"`
}

// Expected lists expected expenses and income.
func (g *Generator) Expected(w io.Writer, expenses, income []models.ExpectedItem, format string) error {
	toViews := func(items []models.ExpectedItem) []expectedView {
		views := make([]expectedView, 0, len(items))
		for _, item := range items {
			views = append(views, expectedView{ID: item.ID, Note: item.Note, Amount: item.Amount})
		}
		return views
	}
	view := struct {
		Expenses []expectedView `json:"expenses"`
		Income   []expectedView `json:"income"`
	}{toViews(expenses), toViews(income)}

	return g.write(w, format, view, func() string {
		rows := func(items []expectedView) [][]string {
			out := make([][]string, 0, len(items))
			for _, item := range items {
				out = append(out, []string{item.ID, item.Note, FormatMoney(item.Amount)})
			}
			return out
		}
		headers := []string{"ID", "Note", "Amount"}
		return RenderTable(Table{Title: "Expected expenses", Headers: headers, Rows: rows(view.Expenses)}) +
			RenderTable(Table{Title: "Expected income", Headers: headers, Rows: rows(view.Income)})
	})
}

type rowErrorView struct {
	Line   int    `json:"line"`
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

type importView struct {
	Imported          int            `json:"imported"`
	Failed            int            `json:"failed"`
	CreatedCategories []string       `json:"createdCategories"`
	Errors            []rowErrorView `json:"errors"`
}

// Import summarizes a CSV import, listing every skipped row.
func (g *Generator) Import(w io.Writer, res importer.Result, format string) error {
	view := importView{
		Imported:          res.Imported,
		Failed:            res.Failed,
		CreatedCategories: make([]string, 0, len(res.CreatedCategories)),
		Errors:            make([]rowErrorView, 0, len(res.Errors)),
	}
	for _, c := range res.CreatedCategories {
		view.CreatedCategories = append(view.CreatedCategories, c.Name)
	}
	for _, e := range res.Errors {
		v := rowErrorView{Line: e.Line, Kind: string(e.Kind), Value: e.Value}
		if e.Err != nil {
			v.Reason = e.Err.Error()
		}
		view.Errors = append(view.Errors, v)
	}

	return g.write(w, format, view, func() string {
		out := fmt.Sprintf("Imported %d transaction(s), %d row(s) skipped.\n", view.Imported, view.Failed)
		for _, name := range view.CreatedCategories {
			out += muted("  New category %q created with a budget of 0.00", name) + "\n"
		}
		if len(view.Errors) > 0 {
			rows := make([][]string, 0, len(view.Errors))
			for _, e := range view.Errors {
				rows = append(rows, []string{fmt.Sprint(e.Line), e.Kind, e.Value})
			}
			out += RenderTable(Table{Title: "Skipped rows", Headers: []string{"Line", "Problem", "Value"}, Rows: rows})
		}
		return out
	})
}

// Transactions lists transactions under a title.
func (g *Generator) Transactions(w io.Writer, title string, txs []models.Transaction, name NameResolver, format string) error {
	view := transactionViews(txs, name)
	return g.write(w, format, view, func() string {
		if len(view) == 0 {
			return muted("  No transactions.") + "\n"
		}
		rows := make([][]string, 0, len(view))
		for _, tx := range view {
			rows = append(rows, []string{tx.ID, tx.Date, tx.Note, tx.Category, highlightNegative(tx.Amount)})
		}
		return RenderTable(Table{Title: title, Headers: []string{"ID", "Date", "Note", "Category", "Amount"}, Rows: rows})
	})
}
