// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"time"

	"fjacquet/daily-dollar/internal/budget"
	"fjacquet/daily-dollar/internal/dateutils"
	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/models"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a command-line amount argument.
func ParseAmount(arg string) (decimal.Decimal, error) {
	amount, err := models.ParseAmount(arg)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", arg)
	}
	return amount, nil
}

// ParseDate parses a YYYY-MM-DD flag value; an empty value means today on
// the service clock.
func ParseDate(svc *budget.Service, value string) (time.Time, error) {
	if value == "" {
		return dateutils.Day(svc.Now()), nil
	}
	date, err := dateutils.ParseISODate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return date, nil
}

// ResolveCategory finds a category by id, then by exact name.
func ResolveCategory(svc *budget.Service, ref string) (models.Category, error) {
	var (
		cat   models.Category
		found bool
	)
	if err := svc.Read(func(l *ledger.Ledger) {
		if cat, found = l.Category(ref); !found {
			cat, found = l.CategoryByName(ref)
		}
	}); err != nil {
		return models.Category{}, err
	}
	if !found {
		return models.Category{}, fmt.Errorf("unknown category %q", ref)
	}
	return cat, nil
}

// FindTransaction looks up a transaction by id.
func FindTransaction(svc *budget.Service, id string) (models.Transaction, error) {
	var (
		tx    models.Transaction
		found bool
	)
	if err := svc.Read(func(l *ledger.Ledger) {
		tx, found = l.Transaction(id)
	}); err != nil {
		return models.Transaction{}, err
	}
	if !found {
		return models.Transaction{}, fmt.Errorf("unknown transaction %q", id)
	}
	return tx, nil
}

// NotFound turns a false result of an edit into an error.
func NotFound(ok bool, kind, id string) error {
	if ok {
		return nil
	}
	return fmt.Errorf("unknown %s %q", kind, id)
}
