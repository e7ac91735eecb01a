package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"csvdash/internal/ingest"
)

var probeRows int

var probeCmd = &cobra.Command{
	Use:   "probe <file>",
	Short: "Inspect a CSV file's encoding, columns and date columns",
	Long: `Reads a CSV (or zipped CSV) file, reports the encoding used to decode
it, and lists every column with a sample value. Columns whose values mostly
parse as dates are marked, so you can see what the dashboards will treat as
birth or death dates before wiring the file in.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt := ingest.Options{MaxRows: probeRows}
		var (
			t   *ingest.Table
			err error
		)
		if strings.HasSuffix(strings.ToLower(path), ".zip") {
			t, err = ingest.ReadCSVFromZip(path, opt)
		} else {
			t, err = ingest.ReadCSV(path, opt)
		}
		if err != nil {
			return err
		}

		fmt.Printf("✓ %s\n", path)
		fmt.Printf("  encoding: %s\n", t.Encoding)
		fmt.Printf("  rows:     %d\n", len(t.Rows))
		fmt.Printf("  columns:  %d\n", len(t.Header))
		fmt.Println()
		for _, col := range t.Header {
			vals := t.Column(col)
			sample := firstNonEmpty(vals)
			tag := ""
			if isDateColumn(vals) {
				tag = "  [date]"
			}
			fmt.Printf("  %-24s %s%s\n", col, sample, tag)
		}
		return nil
	},
}

func firstNonEmpty(vals []string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// isDateColumn reports whether at least half of the non-empty values parse
// as dates. Probes at most 200 values.
func isDateColumn(vals []string) bool {
	seen, parsed := 0, 0
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			continue
		}
		seen++
		if _, ok := ingest.ParseDateFlexible(v); ok {
			parsed++
		}
		if seen == 200 {
			break
		}
	}
	return seen > 0 && parsed*2 >= seen
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeRows, "max-rows", 0, "stop after this many rows (0 reads all)")
}
