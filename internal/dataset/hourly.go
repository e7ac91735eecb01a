package dataset

import (
	"fmt"
	"sort"
	"strings"

	"csvdash/internal/ingest"
)

// Hourly ridership column names.
const (
	hourlyLineCol    = "호선명"
	hourlyStationCol = "지하철역"
	boardSuffix      = "승차인원"
	alightSuffix     = "하차인원"
)

// HourlyProfile is one station's boardings and alightings per time band,
// with the extreme bands precomputed for chart markers.
type HourlyProfile struct {
	Labels []string
	Board  []float64
	Alight []float64

	MaxBoardIdx  int
	MinBoardIdx  int
	MaxAlightIdx int
	MinAlightIdx int
}

// Hourly wraps a per-line, per-station, per-hour ridership table. The hour
// bands come from headers like "06시-07시 승차인원".
type Hourly struct {
	table      *ingest.Table
	boardCols  []string
	alightCols []string
}

// LoadHourly validates the table shape and collects the hour columns.
func LoadHourly(t *ingest.Table) (*Hourly, error) {
	for _, col := range []string{hourlyLineCol, hourlyStationCol} {
		if t.ColumnIndex(col) < 0 {
			return nil, fmt.Errorf("load hourly: missing %q column", col)
		}
	}
	h := &Hourly{
		table:      t,
		boardCols:  t.ColumnsWithSuffix(boardSuffix),
		alightCols: t.ColumnsWithSuffix(alightSuffix),
	}
	if len(h.boardCols) == 0 || len(h.boardCols) != len(h.alightCols) {
		return nil, fmt.Errorf("load hourly: unpaired hour columns (%d boarding, %d alighting)",
			len(h.boardCols), len(h.alightCols))
	}
	return h, nil
}

// Lines returns the sorted unique line names.
func (h *Hourly) Lines() []string {
	return h.uniqueSorted(hourlyLineCol, "")
}

// Stations returns the sorted unique stations of one line.
func (h *Hourly) Stations(line string) []string {
	return h.uniqueSorted(hourlyStationCol, line)
}

func (h *Hourly) uniqueSorted(col, line string) []string {
	lineIdx := h.table.ColumnIndex(hourlyLineCol)
	colIdx := h.table.ColumnIndex(col)
	seen := map[string]bool{}
	var out []string
	for _, row := range h.table.Rows {
		if line != "" && row[lineIdx] != line {
			continue
		}
		v := row[colIdx]
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Profile sums the hour columns over all rows matching line and station.
func (h *Hourly) Profile(line, station string) (*HourlyProfile, error) {
	lineIdx := h.table.ColumnIndex(hourlyLineCol)
	stationIdx := h.table.ColumnIndex(hourlyStationCol)

	p := &HourlyProfile{
		Labels: make([]string, len(h.boardCols)),
		Board:  make([]float64, len(h.boardCols)),
		Alight: make([]float64, len(h.alightCols)),
	}
	for i, col := range h.boardCols {
		p.Labels[i] = strings.TrimSpace(strings.TrimSuffix(col, boardSuffix))
	}

	boardIdx := make([]int, len(h.boardCols))
	alightIdx := make([]int, len(h.alightCols))
	for i, col := range h.boardCols {
		boardIdx[i] = h.table.ColumnIndex(col)
	}
	for i, col := range h.alightCols {
		alightIdx[i] = h.table.ColumnIndex(col)
	}

	matched := 0
	for _, row := range h.table.Rows {
		if row[lineIdx] != line || row[stationIdx] != station {
			continue
		}
		matched++
		for i, idx := range boardIdx {
			p.Board[i] += NumberOrZero(row[idx])
		}
		for i, idx := range alightIdx {
			p.Alight[i] += NumberOrZero(row[idx])
		}
	}
	if matched == 0 {
		return nil, fmt.Errorf("hourly profile: no rows for %s %s", line, station)
	}
	p.MaxBoardIdx, p.MinBoardIdx = extremes(p.Board)
	p.MaxAlightIdx, p.MinAlightIdx = extremes(p.Alight)
	return p, nil
}

func extremes(vals []float64) (maxIdx, minIdx int) {
	for i, v := range vals {
		if v > vals[maxIdx] {
			maxIdx = i
		}
		if v < vals[minIdx] {
			minIdx = i
		}
	}
	return maxIdx, minIdx
}
