package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fjacquet/daily-dollar/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryTags(t *testing.T) {
	tests := []struct {
		name    string
		income  bool
		savings bool
	}{
		{"Income", true, false},
		{"Side INCOME", true, false},
		{"incomes & gifts", true, false},
		{"Salary", false, false},
		{"Savings", false, true},
		{"Emergency savings", false, true},
		{"Groceries", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Category{Name: tc.name}
			assert.Equal(t, tc.income, c.IsIncome())
			assert.Equal(t, tc.savings, c.IsSavings())
		})
	}
}

func TestNewTransaction_TruncatesDate(t *testing.T) {
	tx := NewTransaction(decimal.NewFromInt(5), time.Date(2026, time.January, 5, 17, 45, 0, 0, time.UTC), "Lunch", "cat")

	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), tx.Date)
}

func TestSortNewestFirst(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC) }
	txs := []Transaction{
		{ID: "a", Date: day(1)},
		{ID: "b", Date: day(3)},
		{ID: "c", Date: day(2)},
		{ID: "d", Date: day(3)},
	}

	SortNewestFirst(txs)

	ids := []string{txs[0].ID, txs[1].ID, txs[2].ID, txs[3].ID}
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids)
}

func TestNewExpectedItem_StoresMagnitude(t *testing.T) {
	item := NewExpectedItem(decimal.NewFromInt(-40), "Car repair")
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "Car repair", item.Note)
}

func TestDefaultSnapshot(t *testing.T) {
	s := DefaultSnapshot()

	assert.True(t, s.PaycheckAmount.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, 1, s.PaycheckDay)
	assert.True(t, s.BeginningBalance.IsZero())
	assert.False(t, s.HasPeriodStart())
	require.Len(t, s.Categories, 6)
	assert.Equal(t, "Rent/Mortgage", s.Categories[0].Name)
	assert.True(t, s.Categories[0].Budget.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "Income", s.Categories[5].Name)
	assert.NoError(t, s.Validate())
}

func TestNewSnapshot_CustomSeeds(t *testing.T) {
	s := NewSnapshot(decimal.NewFromInt(2500), 15, []CategorySeed{{Name: "Dining", Budget: 150.5}})

	require.Len(t, s.Categories, 1)
	assert.Equal(t, "Dining", s.Categories[0].Name)
	assert.True(t, s.Categories[0].Budget.Equal(decimal.RequireFromString("150.5")))
	assert.Equal(t, 15, s.PaycheckDay)
}

func TestSnapshotValidate(t *testing.T) {
	s := DefaultSnapshot()
	s.PaycheckDay = 32

	err := s.Validate()
	var verr *parsererror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "paycheckDay", verr.Field)

	s = DefaultSnapshot()
	s.Categories = append(s.Categories, s.Categories[0])
	assert.Error(t, s.Validate())

	s = DefaultSnapshot()
	s.Categories[0].ID = ""
	assert.Error(t, s.Validate())
}

func TestSnapshotClone_IsDeep(t *testing.T) {
	s := DefaultSnapshot()
	s.ForecastBudgets[s.Categories[0].ID] = decimal.NewFromInt(1)

	c := s.Clone()
	c.Categories[0].Name = "Changed"
	c.ForecastBudgets["other"] = decimal.NewFromInt(2)

	assert.Equal(t, "Rent/Mortgage", s.Categories[0].Name)
	assert.Len(t, s.ForecastBudgets, 1)
}

func TestSnapshotJSON_Document(t *testing.T) {
	s := &Snapshot{
		BeginningBalance: decimal.RequireFromString("125.40"),
		PaycheckAmount:   decimal.NewFromInt(3000),
		PaycheckDay:      15,
		Categories:       []Category{{ID: "c1", Name: "Dining", Budget: decimal.NewFromInt(200)}},
		Transactions: []Transaction{{
			ID:         "t1",
			Amount:     decimal.RequireFromString("12.50"),
			Date:       time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
			Note:       "Lunch",
			CategoryID: "c1",
		}},
		ExpectedExpenses: []ExpectedItem{{ID: "e1", Amount: decimal.NewFromInt(80), Note: "Gift"}},
		ForecastBudgets:  map[string]decimal.Decimal{"c1": decimal.NewFromInt(250)},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, 125.4, raw["beginningBalance"])
	assert.Equal(t, float64(15), raw["paycheckDay"])
	assert.Nil(t, raw["lastPeriodStart"])
	tx := raw["transactions"].([]any)[0].(map[string]any)
	assert.Equal(t, "2026-01-05", tx["date"])
	assert.Equal(t, 12.5, tx["amount"])
	assert.Equal(t, "c1", tx["categoryId"])
	assert.Equal(t, []any{}, raw["expectedIncome"])
	assert.Equal(t, float64(250), raw["forecastBudgets"].(map[string]any)["c1"])
}

func TestSnapshotJSON_Decode(t *testing.T) {
	doc := `{
		"beginningBalance": 10.5,
		"paycheckAmount": 3000,
		"paycheckDay": 1,
		"categories": [{"id": "c1", "name": "Income", "budget": 0}],
		"transactions": [{"id": "t1", "amount": -20, "date": "2026-02-01", "note": "", "categoryId": "gone"}],
		"expectedExpenses": [],
		"lastPeriodStart": "2026-02-01"
	}`

	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(doc), &s))

	assert.True(t, s.BeginningBalance.Equal(decimal.RequireFromString("10.5")))
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), s.LastPeriodStart)
	assert.True(t, s.Transactions[0].Amount.Equal(decimal.NewFromInt(-20)))
	assert.Empty(t, s.ExpectedIncome)
	assert.NotNil(t, s.ForecastBudgets)
}

func TestSnapshotJSON_NeverSetSentinel(t *testing.T) {
	for _, doc := range []string{
		`{"paycheckDay": 1, "lastPeriodStart": null}`,
		`{"paycheckDay": 1, "lastPeriodStart": "0001-01-01"}`,
		`{"paycheckDay": 1}`,
	} {
		var s Snapshot
		require.NoError(t, json.Unmarshal([]byte(doc), &s))
		assert.False(t, s.HasPeriodStart(), doc)
	}
}

func TestSnapshotJSON_RejectsBadDates(t *testing.T) {
	var s Snapshot
	err := json.Unmarshal([]byte(`{"transactions": [{"id": "t", "amount": 1, "date": "01/05/26"}]}`), &s)
	assert.Error(t, err)
}
