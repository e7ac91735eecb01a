package ingest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sample.csv", []byte(" 노선명 ,역명,승차총승객수\n2호선,강남,1000\n2호선,역삼,800\n"))

	tab, err := ReadCSV(path, Options{})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tab.Name != "sample.csv" {
		t.Errorf("Name = %q", tab.Name)
	}
	if tab.Encoding != "utf-8" {
		t.Errorf("Encoding = %q", tab.Encoding)
	}
	if got := tab.Header[0]; got != "노선명" {
		t.Errorf("header not trimmed: %q", got)
	}
	if len(tab.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tab.Rows))
	}
	if tab.Rows[1][1] != "역삼" {
		t.Errorf("row value = %q", tab.Rows[1][1])
	}
}

func TestReadCSVTSVDelimiter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sample.tsv", []byte("a\tb\n1\t2\n"))

	tab, err := ReadCSV(path, Options{})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(tab.Header) != 2 || tab.Header[1] != "b" {
		t.Errorf("header = %v", tab.Header)
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ragged.csv", []byte("a,b,c\n1,2\n1,2,3,4\n"))

	tab, err := ReadCSV(path, Options{})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(tab.Rows[0]) != 3 || tab.Rows[0][2] != "" {
		t.Errorf("short row not padded: %v", tab.Rows[0])
	}
	if len(tab.Rows[1]) != 3 {
		t.Errorf("long row not truncated: %v", tab.Rows[1])
	}
}

func TestReadCSVMaxRows(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "many.csv", []byte("a\n1\n2\n3\n4\n"))

	tab, err := ReadCSV(path, Options{MaxRows: 2})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(tab.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(tab.Rows))
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.csv", nil)
	if _, err := ReadCSV(path, Options{}); err == nil {
		t.Fatal("ReadCSV accepted an empty file")
	}
}

func TestReadCSVFromZip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "bundle.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	if w, err := zw.Create("readme.txt"); err == nil {
		w.Write([]byte("not a csv"))
	}
	w, err := zw.Create("data/daily.csv")
	if err != nil {
		t.Fatalf("zip member: %v", err)
	}
	w.Write([]byte("역명,total\n강남,10\n"))
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	f.Close()

	tab, err := ReadCSVFromZip(zipPath, Options{})
	if err != nil {
		t.Fatalf("ReadCSVFromZip: %v", err)
	}
	if tab.Name != "daily.csv" {
		t.Errorf("Name = %q", tab.Name)
	}
	if len(tab.Rows) != 1 || tab.Rows[0][0] != "강남" {
		t.Errorf("rows = %v", tab.Rows)
	}
}

func TestReadCSVFromZipNoMember(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "empty.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	zw.Close()
	f.Close()

	if _, err := ReadCSVFromZip(zipPath, Options{}); err == nil {
		t.Fatal("ReadCSVFromZip accepted a zip without csv members")
	}
}

func TestTableColumnHelpers(t *testing.T) {
	tab := &Table{
		Header: []string{"이름", "생년월일", "07시-08시 승차인원", "07시-08시 하차인원"},
		Rows: [][]string{
			{"김", "19020301", "10", "5"},
			{"이", "미상", "20", "8"},
		},
	}

	if idx := tab.ColumnIndex("생년월일"); idx != 1 {
		t.Errorf("ColumnIndex = %d", idx)
	}
	if idx := tab.ColumnIndex("nope"); idx != -1 {
		t.Errorf("ColumnIndex(nope) = %d", idx)
	}

	col, ok := tab.DetectColumn("출생", "생년")
	if !ok || col != "생년월일" {
		t.Errorf("DetectColumn = %q, %v", col, ok)
	}
	if _, ok := tab.DetectColumn("사망"); ok {
		t.Error("DetectColumn found a death column that does not exist")
	}

	board := tab.ColumnsWithSuffix("승차인원")
	if len(board) != 1 || board[0] != "07시-08시 승차인원" {
		t.Errorf("ColumnsWithSuffix = %v", board)
	}

	vals := tab.Column("생년월일")
	if len(vals) != 2 || vals[1] != "미상" {
		t.Errorf("Column = %v", vals)
	}
	if tab.Column("nope") != nil {
		t.Error("Column(nope) not nil")
	}
}

func TestTableFrame(t *testing.T) {
	tab := &Table{
		Header: []string{"name", "value"},
		Rows:   [][]string{{"a", "1"}, {"b", "2"}},
	}
	df := tab.Frame()
	if df.Err != nil {
		t.Fatalf("Frame: %v", df.Err)
	}
	if r, c := df.Dims(); r != 2 || c != 2 {
		t.Errorf("Dims = %d,%d", r, c)
	}
	// Columns stay string-typed so "1" compares as text, not float.
	if got := df.Col("value").Records()[0]; got != "1" {
		t.Errorf("value[0] = %q", got)
	}
}
