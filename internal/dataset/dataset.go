// Package dataset implements the data operations behind each dashboard page:
// country MBTI distributions, subway ridership, independence-activist records
// and crime statistics. All pages share the same ingestion and chart layers;
// this package holds only the per-page cleaning and grouping.
package dataset

import (
	"strconv"
	"strings"
)

// ParseNumber parses a numeric cell, tolerating thousands separators, percent
// signs and surrounding space. It reports false for anything else.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NumberOrZero coerces a cell to a number, mapping blanks and junk to zero,
// matching to_numeric(errors="coerce").fillna(0) semantics in the source data
// pipelines this replaces.
func NumberOrZero(s string) float64 {
	f, ok := ParseNumber(s)
	if !ok {
		return 0
	}
	return f
}

// LabelValue is one bar of a chart: a label and its numeric value.
type LabelValue struct {
	Label string
	Value float64
}
