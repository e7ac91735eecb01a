package dataset

import (
	"fmt"
	"sort"

	"csvdash/internal/ingest"
)

// MBTITypeCount is the expected number of MBTI type columns.
const MBTITypeCount = 16

const mbtiCountryCol = "Country"

// MBTI wraps a countries-by-MBTI-type percentage table: one Country column
// plus one numeric column per type (INFJ, ISFJ, ...).
type MBTI struct {
	table *ingest.Table
	Types []string
}

// LoadMBTI validates the table shape. Any column other than Country is
// treated as a type column, even when there are not exactly sixteen.
func LoadMBTI(t *ingest.Table) (*MBTI, error) {
	if t.ColumnIndex(mbtiCountryCol) < 0 {
		return nil, fmt.Errorf("load mbti: missing %q column", mbtiCountryCol)
	}
	var types []string
	for _, h := range t.Header {
		if h != mbtiCountryCol {
			types = append(types, h)
		}
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("load mbti: no type columns")
	}
	return &MBTI{table: t, Types: types}, nil
}

// Countries returns the sorted unique country names.
func (m *MBTI) Countries() []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range m.table.Column(mbtiCountryCol) {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Distribution returns the country's type percentages sorted descending, so
// the chart shows the dominant type first.
func (m *MBTI) Distribution(country string) ([]LabelValue, error) {
	row := -1
	for i, c := range m.table.Column(mbtiCountryCol) {
		if c == country {
			row = i
			break
		}
	}
	if row < 0 {
		return nil, fmt.Errorf("mbti distribution: country %q not found", country)
	}
	out := make([]LabelValue, 0, len(m.Types))
	for _, typ := range m.Types {
		v, ok := ParseNumber(m.table.Rows[row][m.table.ColumnIndex(typ)])
		if !ok {
			return nil, fmt.Errorf("mbti distribution: non-numeric %s value for %q", typ, country)
		}
		out = append(out, LabelValue{Label: typ, Value: v})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out, nil
}

// TopCountries ranks countries by one type's value, descending, keeping the
// first k.
func (m *MBTI) TopCountries(mbtiType string, k int) ([]LabelValue, error) {
	idx := m.table.ColumnIndex(mbtiType)
	if idx < 0 {
		return nil, fmt.Errorf("mbti top countries: unknown type %q", mbtiType)
	}
	countryIdx := m.table.ColumnIndex(mbtiCountryCol)
	out := make([]LabelValue, 0, len(m.table.Rows))
	for _, row := range m.table.Rows {
		v, ok := ParseNumber(row[idx])
		if !ok {
			continue
		}
		out = append(out, LabelValue{Label: row[countryIdx], Value: v})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out, nil
}
