package export

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// WriteSQLite writes header and rows into a fresh SQLite database as a
// single table. Columns named in numericCols get a REAL affinity, the rest
// TEXT. An existing file at path is replaced.
func WriteSQLite(path, table string, header []string, rows [][]string, numericCols map[string]bool) error {
	if table == "" {
		table = "dataset"
	}
	_ = os.Remove(path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	defs := make([]string, len(header))
	for i, col := range header {
		affinity := "TEXT"
		if numericCols[col] {
			affinity = "REAL"
		}
		defs[i] = fmt.Sprintf("%q %s", col, affinity)
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE TABLE %q (%s)", table, strings.Join(defs, ","))); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	quoted := make([]string, len(header))
	for i, col := range header {
		quoted[i] = fmt.Sprintf("%q", col)
	}
	placeholders := strings.TrimRight(strings.Repeat("?,", len(header)), ",")
	stmt, err := db.Prepare(fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
		table, strings.Join(quoted, ","), placeholders))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		args := make([]any, len(header))
		for j := range header {
			var v string
			if j < len(row) {
				v = row[j]
			}
			args[j] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	return nil
}
