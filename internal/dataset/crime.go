package dataset

import (
	"fmt"
	"sort"
	"strings"

	"csvdash/internal/ingest"
)

// Crime wraps a crime statistics matrix: leading text columns identify the
// offense category, remaining numeric columns are districts. The split is
// detected from the data rather than fixed headers, since published files
// differ between years.
type Crime struct {
	table        *ingest.Table
	CategoryCols []string
	RegionCols   []string
}

// LoadCrime classifies columns. A column is numeric when at least half of
// its non-empty values parse as numbers.
func LoadCrime(t *ingest.Table) (*Crime, error) {
	if len(t.Header) < 2 {
		return nil, fmt.Errorf("load crime: need at least two columns")
	}
	c := &Crime{table: t}
	for i, h := range t.Header {
		numeric, total := 0, 0
		for _, row := range t.Rows {
			v := strings.TrimSpace(row[i])
			if v == "" {
				continue
			}
			total++
			if _, ok := ParseNumber(v); ok {
				numeric++
			}
		}
		if total > 0 && numeric*2 >= total {
			c.RegionCols = append(c.RegionCols, h)
		} else {
			c.CategoryCols = append(c.CategoryCols, h)
		}
	}
	if len(c.CategoryCols) == 0 || len(c.RegionCols) == 0 {
		return nil, fmt.Errorf("load crime: could not split category and district columns")
	}
	return c, nil
}

// categoryKey joins the category columns of one row, e.g. "강력범죄/살인".
func (c *Crime) categoryKey(row []string) string {
	parts := make([]string, 0, len(c.CategoryCols))
	for _, col := range c.CategoryCols {
		v := strings.TrimSpace(row[c.table.ColumnIndex(col)])
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "/")
}

// Categories returns all category keys in file order, de-duplicated.
func (c *Crime) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, row := range c.table.Rows {
		k := c.categoryKey(row)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// CategoryTotals sums every district column per category, sorted descending.
func (c *Crime) CategoryTotals() []LabelValue {
	totals := map[string]float64{}
	var order []string
	for _, row := range c.table.Rows {
		k := c.categoryKey(row)
		if k == "" {
			continue
		}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		for _, col := range c.RegionCols {
			totals[k] += NumberOrZero(row[c.table.ColumnIndex(col)])
		}
	}
	out := make([]LabelValue, 0, len(order))
	for _, k := range order {
		out = append(out, LabelValue{Label: k, Value: totals[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// RegionBreakdown sums one category across rows per district and returns the
// n largest, descending.
func (c *Crime) RegionBreakdown(category string, n int) ([]LabelValue, error) {
	sums := make([]float64, len(c.RegionCols))
	matched := 0
	for _, row := range c.table.Rows {
		if c.categoryKey(row) != category {
			continue
		}
		matched++
		for i, col := range c.RegionCols {
			sums[i] += NumberOrZero(row[c.table.ColumnIndex(col)])
		}
	}
	if matched == 0 {
		return nil, fmt.Errorf("region breakdown: unknown category %q", category)
	}
	out := make([]LabelValue, len(c.RegionCols))
	for i, col := range c.RegionCols {
		out[i] = LabelValue{Label: col, Value: sums[i]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}
