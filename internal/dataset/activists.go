package dataset

import (
	"fmt"
	"time"

	"csvdash/internal/ingest"
)

// Column keywords used to locate the date columns; the source files vary in
// exact header names.
var (
	birthKeywords = []string{"생년", "출생", "생", "birth"}
	deathKeywords = []string{"사망", "죽", "death"}
)

// ActivistStats summarizes parse quality for the sidebar-style report.
type ActivistStats struct {
	Total        int
	ValidBirth   int
	InvalidBirth int
	ValidDeath   int
}

// MonthCount is one month's tally.
type MonthCount struct {
	Month     int
	MonthName string
	Births    int
	Deaths    int
}

// Activists wraps an independence-activist roster with flexible birth and
// death dates, parsed once at load.
type Activists struct {
	table       *ingest.Table
	BirthCol    string
	DeathCol    string
	birthMonths []int // 0 when unparsable
	deathMonths []int
}

// LoadActivists detects the date columns and parses every row. A death
// column is optional; a birth column is required.
func LoadActivists(t *ingest.Table) (*Activists, error) {
	birthCol, ok := t.DetectColumn(birthKeywords...)
	if !ok {
		return nil, fmt.Errorf("load activists: no birth date column detected")
	}
	deathCol, _ := t.DetectColumn(deathKeywords...)

	a := &Activists{
		table:       t,
		BirthCol:    birthCol,
		DeathCol:    deathCol,
		birthMonths: make([]int, len(t.Rows)),
		deathMonths: make([]int, len(t.Rows)),
	}
	for i, v := range t.Column(birthCol) {
		a.birthMonths[i] = ingest.MonthOf(v)
	}
	if deathCol != "" {
		for i, v := range t.Column(deathCol) {
			a.deathMonths[i] = ingest.MonthOf(v)
		}
	}
	return a, nil
}

// Stats reports row totals and parse success counts.
func (a *Activists) Stats() ActivistStats {
	s := ActivistStats{Total: len(a.table.Rows)}
	for _, m := range a.birthMonths {
		if m > 0 {
			s.ValidBirth++
		}
	}
	s.InvalidBirth = s.Total - s.ValidBirth
	for _, m := range a.deathMonths {
		if m > 0 {
			s.ValidDeath++
		}
	}
	return s
}

// MonthHistogram tallies births and deaths per month, 1..12, zero-filled.
func (a *Activists) MonthHistogram() []MonthCount {
	out := make([]MonthCount, 12)
	for i := range out {
		out[i].Month = i + 1
		out[i].MonthName = time.Month(i + 1).String()
	}
	for _, m := range a.birthMonths {
		if m > 0 {
			out[m-1].Births++
		}
	}
	for _, m := range a.deathMonths {
		if m > 0 {
			out[m-1].Deaths++
		}
	}
	return out
}

// BornIn returns the rows whose birth month matches, for the filterable
// table and CSV download.
func (a *Activists) BornIn(month int) (header []string, rows [][]string) {
	for i, row := range a.table.Rows {
		if a.birthMonths[i] == month {
			rows = append(rows, row)
		}
	}
	return a.table.Header, rows
}

// TopMonths returns the n months with the most births, descending.
func (a *Activists) TopMonths(n int) []MonthCount {
	hist := a.MonthHistogram()
	// insertion sort; twelve elements
	for i := 1; i < len(hist); i++ {
		for j := i; j > 0 && hist[j].Births > hist[j-1].Births; j-- {
			hist[j], hist[j-1] = hist[j-1], hist[j]
		}
	}
	if n > 0 && n < len(hist) {
		hist = hist[:n]
	}
	return hist
}

// SummaryRows flattens the histogram for the summary CSV download.
func (a *Activists) SummaryRows() (header []string, rows [][]string) {
	header = []string{"month", "month_name", "birth_count", "death_count"}
	for _, mc := range a.MonthHistogram() {
		rows = append(rows, []string{
			fmt.Sprintf("%d", mc.Month),
			mc.MonthName,
			fmt.Sprintf("%d", mc.Births),
			fmt.Sprintf("%d", mc.Deaths),
		})
	}
	return header, rows
}
