package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "csvdash/internal/config"
	"csvdash/internal/dataset"
	"csvdash/internal/export"
	"csvdash/internal/ingest"
)

var (
	exportDashboard string
	exportInput     string
	exportOut       string
	exportTable     string
	exportDate      string
	exportLine      string
	exportMonth     int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered dataset rows to CSV or SQLite",
	Long: `Exports rows from one dashboard dataset, after applying its filters:

  ridership          daily rows for --date and --line
  activists          roster rows born in --month (0 exports all rows)
  activists-summary  per-month birth/death counts
  crime              offense categories with totals

CSV output carries a UTF-8 byte order mark so spreadsheet tools open it
correctly. Output with a .db or .sqlite extension is written as a SQLite
table instead (name set by --table).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		if exportOut == "" {
			return fmt.Errorf("missing --out path")
		}

		header, rows, numeric, err := exportRows(c)
		if err != nil {
			return err
		}

		ext := strings.ToLower(filepath.Ext(exportOut))
		switch ext {
		case ".db", ".sqlite", ".sqlite3":
			if err := export.WriteSQLite(exportOut, exportTable, header, rows, numeric); err != nil {
				return err
			}
		case ".csv":
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			if err := export.WriteCSV(f, header, rows); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported output extension %q (use .csv, .db or .sqlite)", ext)
		}
		fmt.Printf("✓ Exported %d rows to %s\n", len(rows), exportOut)
		return nil
	},
}

func exportRows(c *cfgpkg.Global) (header []string, rows [][]string, numeric map[string]bool, err error) {
	load := func(file string) (*ingest.Table, error) {
		path := c.DatasetPath(file)
		if exportInput != "" {
			path = exportInput
		}
		if strings.HasSuffix(strings.ToLower(path), ".zip") {
			return ingest.ReadCSVFromZip(path, ingest.Options{MaxRows: c.MaxRows})
		}
		return ingest.ReadCSV(path, ingest.Options{MaxRows: c.MaxRows})
	}

	switch exportDashboard {
	case "ridership":
		t, err := load(c.RidershipFile)
		if err != nil {
			return nil, nil, nil, err
		}
		rd, err := dataset.LoadRidership(t)
		if err != nil {
			return nil, nil, nil, err
		}
		date, line := exportDate, exportLine
		if date == "" {
			dates := rd.Dates(0, 0)
			if len(dates) == 0 {
				return nil, nil, nil, fmt.Errorf("ridership: no parsable dates")
			}
			date = dates[0]
		}
		if line == "" {
			lines := rd.Lines(date)
			if len(lines) == 0 {
				return nil, nil, nil, fmt.Errorf("ridership: no lines on %s", date)
			}
			line = lines[0]
		}
		header, rows = rd.FilteredRows(date, line)
		numeric = map[string]bool{"total": true}
		return header, rows, numeric, nil

	case "activists":
		t, err := load(c.ActivistsFile)
		if err != nil {
			return nil, nil, nil, err
		}
		a, err := dataset.LoadActivists(t)
		if err != nil {
			return nil, nil, nil, err
		}
		if exportMonth == 0 {
			return t.Header, t.Rows, nil, nil
		}
		if exportMonth < 1 || exportMonth > 12 {
			return nil, nil, nil, fmt.Errorf("invalid --month %d", exportMonth)
		}
		header, rows = a.BornIn(exportMonth)
		return header, rows, nil, nil

	case "activists-summary":
		t, err := load(c.ActivistsFile)
		if err != nil {
			return nil, nil, nil, err
		}
		a, err := dataset.LoadActivists(t)
		if err != nil {
			return nil, nil, nil, err
		}
		header, rows = a.SummaryRows()
		numeric = map[string]bool{"month": true, "birth_count": true, "death_count": true}
		return header, rows, numeric, nil

	case "crime":
		t, err := load(c.CrimeFile)
		if err != nil {
			return nil, nil, nil, err
		}
		cr, err := dataset.LoadCrime(t)
		if err != nil {
			return nil, nil, nil, err
		}
		totals := cr.CategoryTotals()
		header = []string{"category", "total"}
		rows = make([][]string, len(totals))
		for i, lv := range totals {
			rows[i] = []string{lv.Label, fmt.Sprintf("%g", lv.Value)}
		}
		numeric = map[string]bool{"total": true}
		return header, rows, numeric, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown --dashboard %q (ridership|activists|activists-summary|crime)", exportDashboard)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportDashboard, "dashboard", "", "dataset to export: ridership|activists|activists-summary|crime")
	exportCmd.Flags().StringVar(&exportInput, "input", "", "CSV (or zipped CSV) path overriding the configured dataset file")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (.csv, .db or .sqlite)")
	exportCmd.Flags().StringVar(&exportTable, "table", "", "SQLite table name (default dataset)")
	exportCmd.Flags().StringVar(&exportDate, "date", "", "ridership: date YYYY-MM-DD (default first)")
	exportCmd.Flags().StringVar(&exportLine, "line", "", "ridership: line name (default first)")
	exportCmd.Flags().IntVar(&exportMonth, "month", 0, "activists: birth month 1-12 (0 exports every row)")
	_ = exportCmd.MarkFlagRequired("dashboard")
	_ = exportCmd.MarkFlagRequired("out")
}
