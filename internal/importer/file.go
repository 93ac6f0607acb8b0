package importer

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/logging"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText returns data as a string, decoding it as Windows-1252 when it
// is not valid UTF-8. A UTF-8 byte order mark is dropped.
func DecodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("error decoding Windows-1252 text: %w", err)
	}
	return string(decoded), nil
}

// ImportFile reads the file at path and imports its content.
func (i *Importer) ImportFile(l *ledger.Ledger, path string) (Result, error) {
	i.logger.Info("Importing CSV file", logging.F(logging.FieldFile, path))

	data, err := os.ReadFile(path) // #nosec G304 -- user supplied import path
	if err != nil {
		return Result{}, fmt.Errorf("error reading import file: %w", err)
	}
	if !utf8.Valid(data) {
		i.logger.Warn("Import file is not valid UTF-8, decoding as Windows-1252",
			logging.F(logging.FieldFile, path))
	}

	text, err := DecodeText(data)
	if err != nil {
		return Result{}, err
	}
	return i.Import(l, text), nil
}
