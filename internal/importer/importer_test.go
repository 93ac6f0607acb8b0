package importer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/logging"
	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Date,Note,Amount,Category"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func emptyLedger() *ledger.Ledger {
	return ledger.New(&models.Snapshot{PaycheckDay: 1}, nil)
}

func TestImport_SingleRow(t *testing.T) {
	l := emptyLedger()
	res := New(nil).Import(l, "Date,Note,Amount,Category\n01/05/26,Lunch,12.50,Dining\n")

	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 0, res.Failed)
	assert.Empty(t, res.Errors)

	dining, ok := l.CategoryByName("Dining")
	require.True(t, ok)
	assert.True(t, dining.Budget.IsZero())
	require.Len(t, res.CreatedCategories, 1)
	assert.Equal(t, dining.ID, res.CreatedCategories[0].ID)

	txs := l.Transactions()
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Amount.Equal(models.MustParseAmount("12.50")))
	assert.Equal(t, date(2026, 1, 5), txs[0].Date)
	assert.Equal(t, "Lunch", txs[0].Note)
	assert.Equal(t, dining.ID, txs[0].CategoryID)
}

func TestImport_InsufficientColumns(t *testing.T) {
	l := emptyLedger()
	res := New(nil).Import(l, header+"\na,b,c\n")

	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 1, res.Failed)
	assert.Empty(t, l.Transactions())
	assert.Empty(t, l.Categories())

	require.Len(t, res.Errors, 1)
	assert.Equal(t, parsererror.InsufficientColumns, res.Errors[0].Kind)
	assert.Equal(t, 2, res.Errors[0].Line)
	assert.True(t, errors.Is(res.Errors[0], parsererror.ErrInsufficientColumns))
}

func TestImport_FewerThanTwoLines(t *testing.T) {
	for _, raw := range []string{"", header, "01/05/26,Lunch,12.50,Dining"} {
		l := emptyLedger()
		res := New(nil).Import(l, raw)
		assert.Equal(t, Result{}, res, "input %q", raw)
		assert.Empty(t, l.Transactions())
	}
}

func TestImport_HeaderAlwaysSkipped(t *testing.T) {
	l := emptyLedger()
	res := New(nil).Import(l, "01/01/26,First,1,Food\n01/02/26,Second,2,Food")

	assert.Equal(t, 1, res.Imported)
	require.Len(t, l.Transactions(), 1)
	assert.Equal(t, "Second", l.Transactions()[0].Note)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"lf", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b", ""}},
		{"cr", "a\rb", []string{"a", "b"}},
		{"crlf wins over lf", "a\r\nb\nc", []string{"a", "b\nc"}},
		{"single", "a", []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.raw))
		})
	}
}

func TestImport_LineEndings(t *testing.T) {
	rows := []string{header, "01/05/26,Lunch,12.50,Dining", "01/06/26,Bus,2.75,Transport"}
	for name, sep := range map[string]string{"lf": "\n", "crlf": "\r\n", "cr": "\r"} {
		t.Run(name, func(t *testing.T) {
			l := emptyLedger()
			res := New(nil).Import(l, strings.Join(rows, sep)+sep)
			assert.Equal(t, 2, res.Imported)
			assert.Equal(t, 0, res.Failed)
			assert.Len(t, l.Categories(), 2)
		})
	}
}

func TestImport_FieldHandling(t *testing.T) {
	l := emptyLedger()
	existing := l.AddCategory("Groceries", models.MustParseAmount("500"))

	raw := strings.Join([]string{
		header,
		"  01/05/26 ,  Market  , -45.10 ,  Groceries  ",
		"01/06/26,Snacks,3,groceries",
		"01/07/26,Drinks,8.5,Food, Drinks, and more",
		"1/8/26,Short date,1,Groceries",
	}, "\n")

	res := New(nil).Import(l, raw)
	require.Equal(t, 4, res.Imported)
	require.Equal(t, 0, res.Failed)

	txs := l.Transactions()
	assert.Equal(t, existing.ID, txs[0].CategoryID)
	assert.Equal(t, "Market", txs[0].Note)
	assert.True(t, txs[0].Amount.Equal(models.MustParseAmount("45.10")), "amounts are stored as magnitudes")

	lower, ok := l.CategoryByName("groceries")
	require.True(t, ok, "matching is case-sensitive")
	assert.NotEqual(t, existing.ID, lower.ID)
	assert.Equal(t, lower.ID, txs[1].CategoryID)

	assert.Equal(t, "Food, Drinks, and more", l.CategoryName(txs[2].CategoryID))
	assert.Equal(t, date(2026, 1, 8), txs[3].Date)

	assert.Len(t, res.CreatedCategories, 2)
}

func TestImport_ReusesCategoryCreatedEarlierInSameImport(t *testing.T) {
	l := emptyLedger()
	res := New(nil).Import(l, header+"\n01/05/26,A,1,Dining\n01/06/26,B,2,Dining\n")

	assert.Equal(t, 2, res.Imported)
	assert.Len(t, res.CreatedCategories, 1)
	assert.Len(t, l.Categories(), 1)
}

func TestImport_BadRowsDoNotStopImport(t *testing.T) {
	l := emptyLedger()
	logger := logging.NewMockLogger()

	raw := strings.Join([]string{
		header,
		"13/45/26,Bad date,1,Food",
		"01/05/2026,Four digit year,1,Food",
		"01/05/26,Bad amount,twelve,Food",
		"01/05/26,,",
		"   ",
		"01/05/26,Good,7,Food",
	}, "\n")

	res := New(logger).Import(l, raw)

	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 4, res.Failed)
	require.Len(t, res.Errors, 4)

	assert.Equal(t, parsererror.InvalidDate, res.Errors[0].Kind)
	assert.Equal(t, 2, res.Errors[0].Line)
	assert.Equal(t, "13/45/26", res.Errors[0].Value)
	assert.Equal(t, parsererror.InvalidDate, res.Errors[1].Kind)
	assert.Equal(t, parsererror.InvalidAmount, res.Errors[2].Kind)
	assert.True(t, errors.Is(res.Errors[2], parsererror.ErrInvalidAmount))
	assert.Equal(t, parsererror.InsufficientColumns, res.Errors[3].Kind)
	assert.Equal(t, 5, res.Errors[3].Line)

	// Failed rows never create categories.
	assert.Len(t, l.Categories(), 1)

	assert.Len(t, logger.GetEntriesByLevel("DEBUG"), 5)
	summary := logger.GetEntriesByLevel("INFO")
	require.Len(t, summary, 1)
	imported, _ := summary[0].FieldValue(logging.FieldImported)
	assert.Equal(t, 1, imported)
}

func TestDecodeText(t *testing.T) {
	text, err := DecodeText([]byte("Caf\xc3\xa9"))
	require.NoError(t, err)
	assert.Equal(t, "Café", text)

	text, err = DecodeText([]byte("Caf\xe9"))
	require.NoError(t, err)
	assert.Equal(t, "Café", text)

	text, err = DecodeText(append([]byte{0xEF, 0xBB, 0xBF}, "Date"...))
	require.NoError(t, err)
	assert.Equal(t, "Date", text)
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cp1252.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"\r\n01/05/26,Caf\xe9,3.20,Coffee\r\n"), 0600))

	l := emptyLedger()
	logger := logging.NewMockLogger()
	res, err := New(logger).ImportFile(l, path)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, "Café", l.Transactions()[0].Note)
	assert.True(t, logger.HasEntry("WARN", "Import file is not valid UTF-8, decoding as Windows-1252"))

	_, err = New(nil).ImportFile(l, filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	l := emptyLedger()
	dining := l.AddCategory("Dining", models.MustParseAmount("0"))
	gone := l.AddCategory("Gone", models.MustParseAmount("0"))
	l.AddTransaction(models.MustParseAmount("12.5"), date(2026, 1, 5), "Lunch", dining.ID)
	l.AddTransaction(models.MustParseAmount("3"), date(2026, 11, 23), "Old", gone.ID)
	require.True(t, l.DeleteCategory(gone.ID))

	var buf bytes.Buffer
	require.NoError(t, New(nil).Export(l, &buf, ','))

	assert.Equal(t,
		"Date,Note,Amount,Category\n01/05/26,Lunch,12.50,Dining\n11/23/26,Old,3.00,Unknown category\n",
		buf.String())
}

func TestExport_RoundTrip(t *testing.T) {
	src := emptyLedger()
	food := src.AddCategory("Food", models.MustParseAmount("100"))
	src.AddTransaction(models.MustParseAmount("9.99"), date(2026, 2, 1), "Pizza", food.ID)
	src.AddTransaction(models.MustParseAmount("20"), date(2026, 2, 3), "Groceries run", food.ID)

	path := filepath.Join(t.TempDir(), "out", "export.csv")
	imp := New(nil)
	require.NoError(t, imp.ExportFile(src, path, ','))

	dst := emptyLedger()
	res, err := imp.ImportFile(dst, path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 0, res.Failed)

	got := dst.Transactions()
	require.Len(t, got, 2)
	assert.Equal(t, "Pizza", got[0].Note)
	assert.True(t, got[0].Amount.Equal(models.MustParseAmount("9.99")))
	assert.Equal(t, date(2026, 2, 3), got[1].Date)
	assert.Equal(t, "Food", dst.CategoryName(got[1].CategoryID))
}

func TestExport_RoundTrip_DelimiterInFields(t *testing.T) {
	src := emptyLedger()
	food := src.AddCategory("Food, Drinks", models.MustParseAmount("100"))
	src.AddTransaction(models.MustParseAmount("9.99"), date(2026, 2, 1), "Pizza, large", food.ID)

	var buf bytes.Buffer
	imp := New(nil)
	require.NoError(t, imp.Export(src, &buf, ','))
	assert.Equal(t, header+"\n02/01/26,Pizza; large,9.99,Food, Drinks\n", buf.String())

	dst := emptyLedger()
	res := imp.Import(dst, buf.String())
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 0, res.Failed)
	assert.Len(t, res.CreatedCategories, 1)

	got := dst.Transactions()
	require.Len(t, got, 1)
	assert.Equal(t, "Pizza; large", got[0].Note)
	assert.Equal(t, "Food, Drinks", dst.CategoryName(got[0].CategoryID))
}

func TestExport_SemicolonDelimiterAndLineBreaks(t *testing.T) {
	l := emptyLedger()
	c := l.AddCategory("Misc", models.MustParseAmount("0"))
	l.AddTransaction(models.MustParseAmount("1"), date(2026, 3, 2), "a;b\nc", c.ID)

	var buf bytes.Buffer
	require.NoError(t, New(nil).Export(l, &buf, ';'))
	assert.Equal(t, "Date;Note;Amount;Category\n03/02/26;a,b c;1.00;Misc\n", buf.String())
}

func TestExport_WithdrawalKeepsSign(t *testing.T) {
	l := emptyLedger()
	savings := l.AddCategory("Savings", models.MustParseAmount("0"))
	_, ok := l.WithdrawFromSavings(models.MustParseAmount("40"), date(2026, 3, 2), "Trip")
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, New(nil).Export(l, &buf, ','))
	assert.Contains(t, buf.String(), "03/02/26,Trip,-40.00,"+savings.Name)

	dst := emptyLedger()
	res := New(nil).Import(dst, buf.String())
	require.Equal(t, 1, res.Imported)
	assert.True(t, dst.Transactions()[0].Amount.Equal(models.MustParseAmount("40")))
}
