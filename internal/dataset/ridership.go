package dataset

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"csvdash/internal/ingest"
)

// Daily ridership column names as published by the transit authority.
const (
	ridershipDateCol    = "사용일자"
	ridershipLineCol    = "노선명"
	ridershipStationCol = "역명"
	ridershipBoardCol   = "승차총승객수"
	ridershipAlightCol  = "하차총승객수"
)

// Derived column names.
const (
	derivedDateCol  = "date"
	derivedTotalCol = "total"
)

// Ridership holds daily per-station ridership with two derived columns:
// date (ISO formatted, blank when the 사용일자 value is malformed) and
// total (boardings + alightings, junk coerced to zero).
type Ridership struct {
	df dataframe.DataFrame
}

// LoadRidership builds the derived frame.
func LoadRidership(t *ingest.Table) (*Ridership, error) {
	for _, col := range []string{ridershipDateCol, ridershipLineCol, ridershipStationCol} {
		if t.ColumnIndex(col) < 0 {
			return nil, fmt.Errorf("load ridership: missing %q column", col)
		}
	}
	dates := make([]string, len(t.Rows))
	for i, raw := range t.Column(ridershipDateCol) {
		if d, ok := ingest.ParseCompactDate(raw); ok {
			dates[i] = d.Format("2006-01-02")
		}
	}
	totals := make([]float64, len(t.Rows))
	board := t.Column(ridershipBoardCol)
	alight := t.Column(ridershipAlightCol)
	for i := range totals {
		if board != nil {
			totals[i] += NumberOrZero(board[i])
		}
		if alight != nil {
			totals[i] += NumberOrZero(alight[i])
		}
	}
	df := t.Frame().
		Mutate(series.New(dates, series.String, derivedDateCol)).
		Mutate(series.New(totals, series.Float, derivedTotalCol))
	if df.Err != nil {
		return nil, fmt.Errorf("load ridership: %w", df.Err)
	}
	return &Ridership{df: df}, nil
}

// Dates returns the sorted unique dates, optionally restricted to a
// year/month (zero means no restriction).
func (r *Ridership) Dates(year, month int) []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range r.df.Col(derivedDateCol).Records() {
		if d == "" || seen[d] {
			continue
		}
		if year > 0 && d[:4] != fmt.Sprintf("%04d", year) {
			continue
		}
		if month > 0 && d[5:7] != fmt.Sprintf("%02d", month) {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Lines returns the sorted unique lines present on a date.
func (r *Ridership) Lines(date string) []string {
	sub := r.df.Filter(dataframe.F{Colname: derivedDateCol, Comparator: series.Eq, Comparando: date})
	seen := map[string]bool{}
	var out []string
	if sub.Err != nil {
		return nil
	}
	for _, l := range sub.Col(ridershipLineCol).Records() {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// TopStations sums total per station for one date and line and returns the n
// busiest, descending.
func (r *Ridership) TopStations(date, line string, n int) ([]LabelValue, error) {
	sub := r.df.
		Filter(dataframe.F{Colname: derivedDateCol, Comparator: series.Eq, Comparando: date}).
		Filter(dataframe.F{Colname: ridershipLineCol, Comparator: series.Eq, Comparando: line})
	if sub.Err != nil {
		return nil, fmt.Errorf("top stations: %w", sub.Err)
	}
	if sub.Nrow() == 0 {
		return nil, fmt.Errorf("top stations: no rows for %s %s", date, line)
	}
	grouped := sub.GroupBy(ridershipStationCol)
	if grouped.Err != nil {
		return nil, fmt.Errorf("top stations: %w", grouped.Err)
	}
	agg := grouped.Aggregation(
		[]dataframe.AggregationType{dataframe.Aggregation_SUM},
		[]string{derivedTotalCol},
	)
	if agg.Err != nil {
		return nil, fmt.Errorf("top stations: %w", agg.Err)
	}
	sumCol := derivedTotalCol + "_SUM"
	agg = agg.Arrange(dataframe.RevSort(sumCol))
	stations := agg.Col(ridershipStationCol).Records()
	totals := agg.Col(sumCol).Float()
	out := make([]LabelValue, 0, len(stations))
	for i := range stations {
		out = append(out, LabelValue{Label: stations[i], Value: totals[i]})
	}
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// FilteredRows returns the raw rows for one date and line, for the table
// view and CSV download.
func (r *Ridership) FilteredRows(date, line string) (header []string, rows [][]string) {
	sub := r.df.
		Filter(dataframe.F{Colname: derivedDateCol, Comparator: series.Eq, Comparando: date}).
		Filter(dataframe.F{Colname: ridershipLineCol, Comparator: series.Eq, Comparando: line})
	if sub.Err != nil || sub.Nrow() == 0 {
		return nil, nil
	}
	records := sub.Records()
	if len(records) < 2 {
		return nil, nil
	}
	return records[0], records[1:]
}
