package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/daily-dollar/internal/dateutils"
	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/logging"
	"fjacquet/daily-dollar/internal/models"

	"github.com/gocarina/gocsv"
)

// exportRow is the exported layout; it matches the import columns.
type exportRow struct {
	Date     string `csv:"Date"`
	Note     string `csv:"Note"`
	Amount   string `csv:"Amount"`
	Category string `csv:"Category"`
}

// Export writes every transaction of l to w in insertion order, using
// delimiter between fields.
//
// Fields are never quoted: rows are written the way Import reads them, with
// the category as the last column kept verbatim. A delimiter inside a note is
// replaced (";" for a comma delimiter, "," otherwise) and line breaks become
// spaces, so such notes do not round-trip exactly. Amounts keep their sign;
// Import records magnitudes, so a re-imported savings withdrawal comes back as
// a deposit.
func (i *Importer) Export(l *ledger.Ledger, w io.Writer, delimiter rune) error {
	txs := l.Transactions()
	rows := make([]exportRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, toExportRow(l, tx))
	}

	if err := gocsv.MarshalCSV(rows, newPlainWriter(w, delimiter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// plainWriter is a gocsv.CSVWriter that joins fields without quoting.
type plainWriter struct {
	w         io.Writer
	delimiter string
	escape    *strings.Replacer
	last      *strings.Replacer
	err       error
}

func newPlainWriter(w io.Writer, delimiter rune) *plainWriter {
	replacement := ";"
	if delimiter == ';' {
		replacement = ","
	}
	return &plainWriter{
		w:         w,
		delimiter: string(delimiter),
		escape:    strings.NewReplacer(string(delimiter), replacement, "\r\n", " ", "\r", " ", "\n", " "),
		last:      strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " "),
	}
}

func (p *plainWriter) Write(row []string) error {
	if p.err != nil {
		return p.err
	}
	fields := make([]string, len(row))
	for k, field := range row {
		if k == len(row)-1 {
			fields[k] = p.last.Replace(field)
		} else {
			fields[k] = p.escape.Replace(field)
		}
	}
	_, p.err = io.WriteString(p.w, strings.Join(fields, p.delimiter)+"\n")
	return p.err
}

func (p *plainWriter) Flush() {}

func (p *plainWriter) Error() error {
	return p.err
}

// ExportFile writes the transactions of l to a CSV file, creating its
// directory when needed.
func (i *Importer) ExportFile(l *ledger.Ledger, path string, delimiter rune) error {
	i.logger.Info("Exporting transactions to CSV file",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(l.Transactions())))

	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionExportFile) // #nosec G304 -- user supplied export path
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			i.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	return i.Export(l, file, delimiter)
}

func toExportRow(l *ledger.Ledger, tx models.Transaction) exportRow {
	return exportRow{
		Date:     dateutils.ToCSVDate(tx.Date),
		Note:     tx.Note,
		Amount:   models.FormatAmount(tx.Amount),
		Category: l.CategoryName(tx.CategoryID),
	}
}
