package budget

import (
	"context"
	"errors"
	"time"

	"fjacquet/daily-dollar/internal/events"
	"fjacquet/daily-dollar/internal/importer"
	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/models"

	"github.com/shopspring/decimal"
)

// Operation names, as carried by LedgerChanged events.
const (
	OpAddCategory           = "add_category"
	OpUpdateCategory        = "update_category"
	OpDeleteCategory        = "delete_category"
	OpAddTransaction        = "add_transaction"
	OpUpdateTransaction     = "update_transaction"
	OpDeleteTransaction     = "delete_transaction"
	OpWithdrawSavings       = "withdraw_savings"
	OpAddExpectedExpense    = "add_expected_expense"
	OpDeleteExpectedExpense = "delete_expected_expense"
	OpAddExpectedIncome     = "add_expected_income"
	OpDeleteExpectedIncome  = "delete_expected_income"
	OpSetForecastOverride   = "set_forecast_override"
	OpClearForecastOverride = "clear_forecast_override"
	OpSetBeginningBalance   = "set_beginning_balance"
	OpSetPaycheck           = "set_paycheck"
	OpImport                = "import"
)

func (s *Service) AddCategory(ctx context.Context, name string, budget decimal.Decimal) (models.Category, error) {
	var c models.Category
	err := s.mutate(ctx, OpAddCategory, func(l *ledger.Ledger) (string, bool, error) {
		c = l.AddCategory(name, budget)
		return c.ID, true, nil
	})
	return c, err
}

func (s *Service) UpdateCategory(ctx context.Context, id, name string, budget decimal.Decimal) (bool, error) {
	var ok bool
	err := s.mutate(ctx, OpUpdateCategory, func(l *ledger.Ledger) (string, bool, error) {
		ok = l.UpdateCategory(id, name, budget)
		return id, ok, nil
	})
	return ok, err
}

// DeleteCategory removes a category; its transactions are kept.
func (s *Service) DeleteCategory(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := s.mutate(ctx, OpDeleteCategory, func(l *ledger.Ledger) (string, bool, error) {
		ok = l.DeleteCategory(id)
		return id, ok, nil
	})
	return ok, err
}

func (s *Service) AddTransaction(ctx context.Context, amount decimal.Decimal, date time.Time, note, categoryID string) (models.Transaction, error) {
	var tx models.Transaction
	err := s.mutate(ctx, OpAddTransaction, func(l *ledger.Ledger) (string, bool, error) {
		tx = l.AddTransaction(amount, date, note, categoryID)
		return tx.ID, true, nil
	})
	return tx, err
}

func (s *Service) UpdateTransaction(ctx context.Context, tx models.Transaction) (bool, error) {
	var ok bool
	err := s.mutate(ctx, OpUpdateTransaction, func(l *ledger.Ledger) (string, bool, error) {
		ok = l.UpdateTransaction(tx)
		return tx.ID, ok, nil
	})
	return ok, err
}

func (s *Service) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := s.mutate(ctx, OpDeleteTransaction, func(l *ledger.Ledger) (string, bool, error) {
		ok = l.DeleteTransaction(id)
		return id, ok, nil
	})
	return ok, err
}

// WithdrawFromSavings records a withdrawal; ok is false without a savings
// category.
func (s *Service) WithdrawFromSavings(ctx context.Context, amount decimal.Decimal, date time.Time, note string) (tx models.Transaction, ok bool, err error) {
	err = s.mutate(ctx, OpWithdrawSavings, func(l *ledger.Ledger) (string, bool, error) {
		tx, ok = l.WithdrawFromSavings(amount, date, note)
		return tx.ID, ok, nil
	})
	return tx, ok, err
}

func (s *Service) AddExpectedExpense(ctx context.Context, amount decimal.Decimal, note string) (models.ExpectedItem, error) {
	var item models.ExpectedItem
	err := s.mutate(ctx, OpAddExpectedExpense, func(l *ledger.Ledger) (string, bool, error) {
		item = l.AddExpectedExpense(amount, note)
		return item.ID, true, nil
	})
	return item, err
}

func (s *Service) DeleteExpectedExpense(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := s.mutate(ctx, OpDeleteExpectedExpense, func(l *ledger.Ledger) (string, bool, error) {
		ok = l.DeleteExpectedExpense(id)
		return id, ok, nil
	})
	return ok, err
}

func (s *Service) AddExpectedIncome(ctx context.Context, amount decimal.Decimal, note string) (models.ExpectedItem, error) {
	var item models.ExpectedItem
	err := s.mutate(ctx, OpAddExpectedIncome, func(l *ledger.Ledger) (string, bool, error) {
		item = l.AddExpectedIncome(amount, note)
		return item.ID, true, nil
	})
	return item, err
}

func (s *Service) DeleteExpectedIncome(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := s.mutate(ctx, OpDeleteExpectedIncome, func(l *ledger.Ledger) (string, bool, error) {
		ok = l.DeleteExpectedIncome(id)
		return id, ok, nil
	})
	return ok, err
}

// SetForecastOverride sets the next-period budget of a category; ok is false
// for an unknown category.
func (s *Service) SetForecastOverride(ctx context.Context, categoryID string, budget decimal.Decimal) (bool, error) {
	var ok bool
	err := s.mutate(ctx, OpSetForecastOverride, func(l *ledger.Ledger) (string, bool, error) {
		ok = l.SetForecastOverride(categoryID, budget)
		return categoryID, ok, nil
	})
	return ok, err
}

func (s *Service) ClearForecastOverride(ctx context.Context, categoryID string) (bool, error) {
	var ok bool
	err := s.mutate(ctx, OpClearForecastOverride, func(l *ledger.Ledger) (string, bool, error) {
		ok = l.ClearForecastOverride(categoryID)
		return categoryID, ok, nil
	})
	return ok, err
}

func (s *Service) SetBeginningBalance(ctx context.Context, balance decimal.Decimal) error {
	return s.mutate(ctx, OpSetBeginningBalance, func(l *ledger.Ledger) (string, bool, error) {
		l.SetBeginningBalance(balance)
		return "", true, nil
	})
}

// SetPaycheck changes the paycheck amount and day. An out of range day is
// rejected with a *parsererror.ValidationError and nothing is saved.
func (s *Service) SetPaycheck(ctx context.Context, amount decimal.Decimal, day int) error {
	return s.mutate(ctx, OpSetPaycheck, func(l *ledger.Ledger) (string, bool, error) {
		if err := l.SetPaycheck(amount, day); err != nil {
			return "", false, err
		}
		return "", true, nil
	})
}

// ImportCSV imports raw CSV text. The result is returned even when saving
// fails.
func (s *Service) ImportCSV(ctx context.Context, raw string) (importer.Result, error) {
	var res importer.Result
	err := s.mutate(ctx, OpImport, func(l *ledger.Ledger) (string, bool, error) {
		res = s.importer.Import(l, raw)
		return "", res.Imported > 0, nil
	})
	if errors.Is(err, ErrNotOpen) {
		return res, err
	}
	s.publishImport(res)
	return res, err
}

// ImportFile imports the CSV file at path.
func (s *Service) ImportFile(ctx context.Context, path string) (importer.Result, error) {
	var res importer.Result
	err := s.mutate(ctx, OpImport, func(l *ledger.Ledger) (string, bool, error) {
		var err error
		res, err = s.importer.ImportFile(l, path)
		if err != nil {
			return "", false, err
		}
		return "", res.Imported > 0, nil
	})
	if err == nil || res.Imported > 0 {
		s.publishImport(res)
	}
	return res, err
}

// ExportFile writes every transaction to a CSV file.
func (s *Service) ExportFile(path string, delimiter rune) error {
	var err error
	if readErr := s.Read(func(l *ledger.Ledger) {
		err = s.importer.ExportFile(l, path, delimiter)
	}); readErr != nil {
		return readErr
	}
	return err
}

func (s *Service) publishImport(res importer.Result) {
	names := make([]string, 0, len(res.CreatedCategories))
	for _, c := range res.CreatedCategories {
		names = append(names, c.Name)
	}
	s.publish(events.NewEvent(events.ImportCompleted, events.Import{
		Imported:          res.Imported,
		Failed:            res.Failed,
		CreatedCategories: names,
	}))
}
