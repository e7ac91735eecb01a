package ingest

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Options controls CSV ingestion.
type Options struct {
	// Delimiter for CSV fields. Zero means comma, or tab for .tsv paths.
	Delimiter rune
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
}

// Table is a decoded CSV held entirely as strings, mirroring a
// dtype=str dataframe. Header names are trimmed and ragged rows padded.
type Table struct {
	Name     string
	Encoding string
	Header   []string
	Rows     [][]string
}

// ReadCSV loads and decodes a CSV file from disk.
func ReadCSV(path string, opt Options) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if opt.Delimiter == 0 && strings.HasSuffix(strings.ToLower(path), ".tsv") {
		opt.Delimiter = '\t'
	}
	t, err := parseTable(data, opt)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// ReadCSVFromZip loads the first .csv member of a zip archive. Large public
// data downloads are often distributed zipped.
func ReadCSVFromZip(path string, opt Options) (*Table, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open zip member %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read zip member %s: %w", f.Name, err)
		}
		t, err := parseTable(data, opt)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Name, err)
		}
		t.Name = filepath.Base(f.Name)
		return t, nil
	}
	return nil, fmt.Errorf("open zip: no .csv member in %s", filepath.Base(path))
}

func parseTable(data []byte, opt Options) (*Table, error) {
	text, encName, err := DecodeText(data)
	if err != nil {
		return nil, err
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
	}
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	ncol := len(header)

	t := &Table{Encoding: encName, Header: header}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+2, err)
		}
		if len(rec) < ncol {
			padded := make([]string, ncol)
			copy(padded, rec)
			rec = padded
		} else if len(rec) > ncol {
			rec = rec[:ncol]
		} else {
			rec = append([]string(nil), rec...)
		}
		t.Rows = append(t.Rows, rec)
		if opt.MaxRows > 0 && len(t.Rows) >= opt.MaxRows {
			break
		}
	}
	return t, nil
}

// Frame converts the table to a gota dataframe with every column typed as
// string, so numeric coercion stays explicit.
func (t *Table) Frame() dataframe.DataFrame {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Header)
	records = append(records, t.Rows...)
	return dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DefaultType(series.String),
		dataframe.DetectTypes(false),
	)
}

// ColumnIndex returns the position of an exact header name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// DetectColumn returns the first header containing any of the keywords
// (case-insensitive), the way the record dashboards locate birth and death
// columns without fixed schemas.
func (t *Table) DetectColumn(keywords ...string) (string, bool) {
	for _, h := range t.Header {
		lower := strings.ToLower(h)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return h, true
			}
		}
	}
	return "", false
}

// ColumnsWithSuffix returns headers ending in suffix, preserving order. Hourly
// ridership files encode the hour in the header ("06시-07시 승차인원").
func (t *Table) ColumnsWithSuffix(suffix string) []string {
	var out []string
	for _, h := range t.Header {
		if strings.HasSuffix(h, suffix) {
			out = append(out, h)
		}
	}
	return out
}

// Column returns the values of a named column; missing columns yield nil.
func (t *Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}
