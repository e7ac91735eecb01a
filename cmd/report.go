package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"csvdash/internal/dataset"
	"csvdash/internal/ingest"
)

var (
	repOutputPath string
	repDelimiter  string
	repSampleRows int
	repMaxRows    int
	repGroupBy    string
	repTopValues  int
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Profile a CSV and produce a concise column summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt := ingest.Options{MaxRows: repMaxRows}
		switch repDelimiter {
		case "", ",":
		case "\t", "tab":
			opt.Delimiter = '\t'
		case ";":
			opt.Delimiter = ';'
		default:
			return fmt.Errorf("unsupported --delimiter: %s", repDelimiter)
		}
		t, err := ingest.ReadCSV(path, opt)
		if err != nil {
			return err
		}
		popt := dataset.DefaultProfileOptions()
		if repSampleRows > 0 {
			popt.SampleRows = repSampleRows
		}
		if repTopValues > 0 {
			popt.TopValues = repTopValues
		}
		popt.GroupBy = repGroupBy
		md := dataset.ProfileTable(t, popt).Markdown()

		if repOutputPath != "" {
			if err := os.WriteFile(repOutputPath, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote report to %s\n", repOutputPath)
			return nil
		}
		fmt.Println(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&repOutputPath, "output", "o", "", "optional path to write the report (Markdown)")
	reportCmd.Flags().StringVar(&repDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	reportCmd.Flags().IntVar(&repSampleRows, "sample-rows", 5, "number of sample rows to include")
	reportCmd.Flags().IntVar(&repMaxRows, "max-rows", 0, "maximum rows to read (0 = unlimited)")
	reportCmd.Flags().StringVar(&repGroupBy, "group-by", "", "column name to group numeric sums by")
	reportCmd.Flags().IntVar(&repTopValues, "top-values", 8, "category values listed per column")
}
