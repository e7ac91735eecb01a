package dataset

import (
	"testing"

	"csvdash/internal/ingest"
)

func crimeFixture() *ingest.Table {
	return &ingest.Table{
		Header: []string{"범죄대분류", "범죄중분류", "종로구", "중구", "강남구"},
		Rows: [][]string{
			{"강력범죄", "살인", "3", "2", "5"},
			{"강력범죄", "강도", "10", "8", "20"},
			{"절도범죄", "절도", "100", "90", "300"},
			{"절도범죄", "절도", "50", "10", "40"},
		},
	}
}

func TestLoadCrime(t *testing.T) {
	c, err := LoadCrime(crimeFixture())
	if err != nil {
		t.Fatalf("LoadCrime: %v", err)
	}
	if len(c.CategoryCols) != 2 {
		t.Errorf("CategoryCols = %v", c.CategoryCols)
	}
	if len(c.RegionCols) != 3 {
		t.Errorf("RegionCols = %v", c.RegionCols)
	}

	if _, err := LoadCrime(&ingest.Table{Header: []string{"only"}}); err == nil {
		t.Error("LoadCrime accepted a single-column table")
	}
	allText := &ingest.Table{
		Header: []string{"a", "b"},
		Rows:   [][]string{{"x", "y"}},
	}
	if _, err := LoadCrime(allText); err == nil {
		t.Error("LoadCrime accepted a table without numeric columns")
	}
}

func TestCrimeCategories(t *testing.T) {
	c, err := LoadCrime(crimeFixture())
	if err != nil {
		t.Fatalf("LoadCrime: %v", err)
	}
	cats := c.Categories()
	want := []string{"강력범죄/살인", "강력범죄/강도", "절도범죄/절도"}
	if len(cats) != len(want) {
		t.Fatalf("Categories = %v", cats)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("Categories[%d] = %q, want %q", i, cats[i], want[i])
		}
	}
}

func TestCrimeCategoryTotals(t *testing.T) {
	c, err := LoadCrime(crimeFixture())
	if err != nil {
		t.Fatalf("LoadCrime: %v", err)
	}
	totals := c.CategoryTotals()
	if totals[0].Label != "절도범죄/절도" || totals[0].Value != 590 {
		t.Errorf("largest category = %+v", totals[0])
	}
	if totals[len(totals)-1].Label != "강력범죄/살인" || totals[len(totals)-1].Value != 10 {
		t.Errorf("smallest category = %+v", totals[len(totals)-1])
	}
}

func TestCrimeRegionBreakdown(t *testing.T) {
	c, err := LoadCrime(crimeFixture())
	if err != nil {
		t.Fatalf("LoadCrime: %v", err)
	}
	// Two 절도 rows sum per district.
	regions, err := c.RegionBreakdown("절도범죄/절도", 2)
	if err != nil {
		t.Fatalf("RegionBreakdown: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("RegionBreakdown = %+v", regions)
	}
	if regions[0].Label != "강남구" || regions[0].Value != 340 {
		t.Errorf("top district = %+v", regions[0])
	}
	if regions[1].Label != "종로구" || regions[1].Value != 150 {
		t.Errorf("second district = %+v", regions[1])
	}

	if _, err := c.RegionBreakdown("없는분류", 2); err == nil {
		t.Error("RegionBreakdown accepted an unknown category")
	}
}
