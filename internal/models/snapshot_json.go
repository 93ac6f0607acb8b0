package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// The persisted document keeps amounts as JSON numbers and dates as ISO
// dates. lastPeriodStart is null until the first period check.

type snapshotDocument struct {
	BeginningBalance json.Number            `json:"beginningBalance"`
	PaycheckAmount   json.Number            `json:"paycheckAmount"`
	PaycheckDay      int                    `json:"paycheckDay"`
	Categories       []categoryDocument     `json:"categories"`
	Transactions     []transactionDocument  `json:"transactions"`
	ExpectedExpenses []expectedDocument     `json:"expectedExpenses"`
	ExpectedIncome   []expectedDocument     `json:"expectedIncome"`
	LastPeriodStart  *string                `json:"lastPeriodStart"`
	ForecastBudgets  map[string]json.Number `json:"forecastBudgets"`
}

type categoryDocument struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Budget json.Number `json:"budget"`
}

type transactionDocument struct {
	ID         string      `json:"id"`
	Amount     json.Number `json:"amount"`
	Date       string      `json:"date"`
	Note       string      `json:"note"`
	CategoryID string      `json:"categoryId"`
}

type expectedDocument struct {
	ID     string      `json:"id"`
	Amount json.Number `json:"amount"`
	Note   string      `json:"note"`
}

const isoDate = "2006-01-02"

// legacyNeverSet is how a never-set period start was written by older builds.
const legacyNeverSet = "0001-01-01"

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func parseNumber(field string, n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, n, err)
	}
	return d, nil
}

// MarshalJSON encodes the snapshot as the persisted document.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	doc := snapshotDocument{
		BeginningBalance: number(s.BeginningBalance),
		PaycheckAmount:   number(s.PaycheckAmount),
		PaycheckDay:      s.PaycheckDay,
		Categories:       make([]categoryDocument, 0, len(s.Categories)),
		Transactions:     make([]transactionDocument, 0, len(s.Transactions)),
		ExpectedExpenses: make([]expectedDocument, 0, len(s.ExpectedExpenses)),
		ExpectedIncome:   make([]expectedDocument, 0, len(s.ExpectedIncome)),
		ForecastBudgets:  make(map[string]json.Number, len(s.ForecastBudgets)),
	}
	for _, c := range s.Categories {
		doc.Categories = append(doc.Categories, categoryDocument{ID: c.ID, Name: c.Name, Budget: number(c.Budget)})
	}
	for _, t := range s.Transactions {
		doc.Transactions = append(doc.Transactions, transactionDocument{
			ID:         t.ID,
			Amount:     number(t.Amount),
			Date:       t.Date.Format(isoDate),
			Note:       t.Note,
			CategoryID: t.CategoryID,
		})
	}
	for _, e := range s.ExpectedExpenses {
		doc.ExpectedExpenses = append(doc.ExpectedExpenses, expectedDocument{ID: e.ID, Amount: number(e.Amount), Note: e.Note})
	}
	for _, e := range s.ExpectedIncome {
		doc.ExpectedIncome = append(doc.ExpectedIncome, expectedDocument{ID: e.ID, Amount: number(e.Amount), Note: e.Note})
	}
	if s.HasPeriodStart() {
		start := s.LastPeriodStart.Format(isoDate)
		doc.LastPeriodStart = &start
	}
	for id, budget := range s.ForecastBudgets {
		doc.ForecastBudgets[id] = number(budget)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes the persisted document. Missing lists decode as
// empty and a missing forecastBudgets object as an empty override set.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var out Snapshot
	var err error
	if out.BeginningBalance, err = parseNumber("beginningBalance", doc.BeginningBalance); err != nil {
		return err
	}
	if out.PaycheckAmount, err = parseNumber("paycheckAmount", doc.PaycheckAmount); err != nil {
		return err
	}
	out.PaycheckDay = doc.PaycheckDay

	for _, c := range doc.Categories {
		budget, err := parseNumber("category budget", c.Budget)
		if err != nil {
			return err
		}
		out.Categories = append(out.Categories, Category{ID: c.ID, Name: c.Name, Budget: budget})
	}
	for _, t := range doc.Transactions {
		amount, err := parseNumber("transaction amount", t.Amount)
		if err != nil {
			return err
		}
		date, err := time.Parse(isoDate, t.Date)
		if err != nil {
			return fmt.Errorf("invalid transaction date %q: %w", t.Date, err)
		}
		out.Transactions = append(out.Transactions, Transaction{
			ID:         t.ID,
			Amount:     amount,
			Date:       date,
			Note:       t.Note,
			CategoryID: t.CategoryID,
		})
	}
	if out.ExpectedExpenses, err = decodeExpected(doc.ExpectedExpenses); err != nil {
		return err
	}
	if out.ExpectedIncome, err = decodeExpected(doc.ExpectedIncome); err != nil {
		return err
	}

	if doc.LastPeriodStart != nil && *doc.LastPeriodStart != "" && *doc.LastPeriodStart != legacyNeverSet {
		start, err := time.Parse(isoDate, *doc.LastPeriodStart)
		if err != nil {
			return fmt.Errorf("invalid lastPeriodStart %q: %w", *doc.LastPeriodStart, err)
		}
		out.LastPeriodStart = start
	}

	out.ForecastBudgets = make(map[string]decimal.Decimal, len(doc.ForecastBudgets))
	for id, n := range doc.ForecastBudgets {
		budget, err := parseNumber("forecast budget", n)
		if err != nil {
			return err
		}
		out.ForecastBudgets[id] = budget
	}

	*s = out
	return nil
}

func decodeExpected(docs []expectedDocument) ([]ExpectedItem, error) {
	var items []ExpectedItem
	for _, e := range docs {
		amount, err := parseNumber("expected amount", e.Amount)
		if err != nil {
			return nil, err
		}
		items = append(items, ExpectedItem{ID: e.ID, Amount: amount, Note: e.Note})
	}
	return items, nil
}
