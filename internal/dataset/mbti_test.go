package dataset

import (
	"testing"

	"csvdash/internal/ingest"
)

func mbtiFixture() *ingest.Table {
	return &ingest.Table{
		Header: []string{"Country", "INFJ", "ENFP", "ISTJ"},
		Rows: [][]string{
			{"Korea", "0.10", "0.25", "0.05"},
			{"France", "0.30", "0.20", "0.15"},
			{"Brazil", "0.05", "0.40", "0.10"},
		},
	}
}

func TestLoadMBTI(t *testing.T) {
	m, err := LoadMBTI(mbtiFixture())
	if err != nil {
		t.Fatalf("LoadMBTI: %v", err)
	}
	if len(m.Types) != 3 {
		t.Errorf("Types = %v", m.Types)
	}

	if _, err := LoadMBTI(&ingest.Table{Header: []string{"Nation", "INFJ"}}); err == nil {
		t.Error("LoadMBTI accepted a table without a Country column")
	}
	if _, err := LoadMBTI(&ingest.Table{Header: []string{"Country"}}); err == nil {
		t.Error("LoadMBTI accepted a table without type columns")
	}
}

func TestMBTICountries(t *testing.T) {
	m, err := LoadMBTI(mbtiFixture())
	if err != nil {
		t.Fatalf("LoadMBTI: %v", err)
	}
	got := m.Countries()
	want := []string{"Brazil", "France", "Korea"}
	if len(got) != len(want) {
		t.Fatalf("Countries = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Countries[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMBTIDistribution(t *testing.T) {
	m, err := LoadMBTI(mbtiFixture())
	if err != nil {
		t.Fatalf("LoadMBTI: %v", err)
	}
	dist, err := m.Distribution("Korea")
	if err != nil {
		t.Fatalf("Distribution: %v", err)
	}
	if dist[0].Label != "ENFP" || dist[0].Value != 0.25 {
		t.Errorf("dominant type = %+v", dist[0])
	}
	if dist[2].Label != "ISTJ" {
		t.Errorf("last type = %+v", dist[2])
	}

	if _, err := m.Distribution("Atlantis"); err == nil {
		t.Error("Distribution accepted an unknown country")
	}
}

func TestMBTITopCountries(t *testing.T) {
	m, err := LoadMBTI(mbtiFixture())
	if err != nil {
		t.Fatalf("LoadMBTI: %v", err)
	}
	top, err := m.TopCountries("INFJ", 2)
	if err != nil {
		t.Fatalf("TopCountries: %v", err)
	}
	if len(top) != 2 || top[0].Label != "France" || top[1].Label != "Korea" {
		t.Errorf("TopCountries = %+v", top)
	}

	if _, err := m.TopCountries("XXXX", 2); err == nil {
		t.Error("TopCountries accepted an unknown type")
	}
}
