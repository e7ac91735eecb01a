// Package export writes cleaned, filtered rows out as CSV or SQLite.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// utf8BOM is prepended to CSV downloads so spreadsheet tools opening the
// file default to UTF-8 (the utf-8-sig convention of the source exports).
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes header and rows as BOM-prefixed UTF-8 CSV.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
