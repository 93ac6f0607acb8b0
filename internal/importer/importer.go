// Package importer ingests loosely formatted transaction text into a ledger
// and exports transactions back to CSV.
//
// Rows look like
//
//	Date,Note,Amount,Category
//	01/05/26,Lunch,12.50,Dining
//
// and are split on the first three commas only, so the category keeps any
// commas it contains. Quoting is not interpreted. Import is best effort: a
// malformed row is counted and skipped, never fatal.
package importer

import (
	"fmt"
	"strings"

	"fjacquet/daily-dollar/internal/dateutils"
	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/logging"
	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/parsererror"

	"github.com/shopspring/decimal"
)

const fieldCount = 4

// Result reports the outcome of an import.
type Result struct {
	Imported int
	Failed   int
	// Errors holds one entry per failed row, in file order.
	Errors []*parsererror.RowParseError
	// CreatedCategories lists the categories added for unknown names.
	CreatedCategories []models.Category
}

// Importer parses CSV text into ledger mutations.
type Importer struct {
	logger logging.Logger
}

// New creates an importer. A nil logger disables logging.
func New(logger logging.Logger) *Importer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Importer{logger: logger}
}

// SplitLines splits raw on CRLF when present, else on lone CR, else on LF.
func SplitLines(raw string) []string {
	switch {
	case strings.Contains(raw, "\r\n"):
		return strings.Split(raw, "\r\n")
	case strings.Contains(raw, "\r"):
		return strings.Split(raw, "\r")
	default:
		return strings.Split(raw, "\n")
	}
}

// Import adds one transaction per well-formed row of raw. The first line is
// a header and always skipped, as are blank lines. Amounts are stored as
// their absolute value. A category name with no exact match creates a new
// category with a zero budget.
func (i *Importer) Import(l *ledger.Ledger, raw string) Result {
	var res Result

	lines := SplitLines(raw)
	if len(lines) < 2 {
		return res
	}

	for idx, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineNo := idx + 2

		if err := i.importRow(l, line, lineNo, &res); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, err)
			i.logger.WithError(err).Debug("Skipping CSV row",
				logging.F(logging.FieldLine, lineNo),
				logging.F(logging.FieldReason, string(err.Kind)))
			continue
		}
		res.Imported++
	}

	i.logger.Info("CSV import finished",
		logging.F(logging.FieldImported, res.Imported),
		logging.F(logging.FieldFailed, res.Failed))
	return res
}

func (i *Importer) importRow(l *ledger.Ledger, line string, lineNo int, res *Result) *parsererror.RowParseError {
	fields := strings.SplitN(line, ",", fieldCount)
	if len(fields) < fieldCount {
		return &parsererror.RowParseError{
			Line:  lineNo,
			Kind:  parsererror.InsufficientColumns,
			Value: line,
			Err:   fmt.Errorf("got %d fields, want %d", len(fields), fieldCount),
		}
	}
	for k := range fields {
		fields[k] = strings.TrimSpace(fields[k])
	}
	dateText, note, amountText, categoryName := fields[0], fields[1], fields[2], fields[3]

	date, err := dateutils.ParseCSVDate(dateText)
	if err != nil {
		return &parsererror.RowParseError{Line: lineNo, Kind: parsererror.InvalidDate, Value: dateText, Err: err}
	}
	amount, err := models.ParseAmount(amountText)
	if err != nil {
		return &parsererror.RowParseError{Line: lineNo, Kind: parsererror.InvalidAmount, Value: amountText, Err: err}
	}

	category, ok := l.CategoryByName(categoryName)
	if !ok {
		category = l.AddCategory(categoryName, decimal.Zero)
		res.CreatedCategories = append(res.CreatedCategories, category)
		i.logger.Debug("Created category from import",
			logging.F(logging.FieldCategory, categoryName),
			logging.F(logging.FieldLine, lineNo))
	}

	l.AddTransaction(amount.Abs(), date, note, category.ID)
	return nil
}
