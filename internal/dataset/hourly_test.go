package dataset

import (
	"testing"

	"csvdash/internal/ingest"
)

func hourlyFixture() *ingest.Table {
	return &ingest.Table{
		Header: []string{
			"호선명", "지하철역",
			"06시-07시 승차인원", "06시-07시 하차인원",
			"07시-08시 승차인원", "07시-08시 하차인원",
			"08시-09시 승차인원", "08시-09시 하차인원",
		},
		Rows: [][]string{
			{"2호선", "강남", "100", "80", "900", "300", "400", "700"},
			{"2호선", "강남", "10", "10", "100", "50", "50", "100"},
			{"2호선", "역삼", "50", "40", "200", "100", "150", "120"},
			{"1호선", "서울역", "300", "200", "1200", "800", "600", "900"},
		},
	}
}

func TestLoadHourly(t *testing.T) {
	h, err := LoadHourly(hourlyFixture())
	if err != nil {
		t.Fatalf("LoadHourly: %v", err)
	}
	if len(h.boardCols) != 3 || len(h.alightCols) != 3 {
		t.Errorf("hour columns = %d boarding, %d alighting", len(h.boardCols), len(h.alightCols))
	}

	if _, err := LoadHourly(&ingest.Table{Header: []string{"지하철역"}}); err == nil {
		t.Error("LoadHourly accepted a table without the line column")
	}
	unpaired := &ingest.Table{
		Header: []string{"호선명", "지하철역", "06시-07시 승차인원"},
	}
	if _, err := LoadHourly(unpaired); err == nil {
		t.Error("LoadHourly accepted unpaired hour columns")
	}
}

func TestHourlyLinesAndStations(t *testing.T) {
	h, err := LoadHourly(hourlyFixture())
	if err != nil {
		t.Fatalf("LoadHourly: %v", err)
	}
	lines := h.Lines()
	if len(lines) != 2 || lines[0] != "1호선" || lines[1] != "2호선" {
		t.Errorf("Lines = %v", lines)
	}
	stations := h.Stations("2호선")
	if len(stations) != 2 || stations[0] != "강남" || stations[1] != "역삼" {
		t.Errorf("Stations = %v", stations)
	}
	if got := h.Stations("9호선"); len(got) != 0 {
		t.Errorf("Stations(9호선) = %v", got)
	}
}

func TestHourlyProfile(t *testing.T) {
	h, err := LoadHourly(hourlyFixture())
	if err != nil {
		t.Fatalf("LoadHourly: %v", err)
	}
	p, err := h.Profile("2호선", "강남")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if len(p.Labels) != 3 || p.Labels[0] != "06시-07시" {
		t.Errorf("Labels = %v", p.Labels)
	}
	// Two 강남 rows sum per band.
	if p.Board[0] != 110 || p.Board[1] != 1000 || p.Board[2] != 450 {
		t.Errorf("Board = %v", p.Board)
	}
	if p.Alight[2] != 800 {
		t.Errorf("Alight = %v", p.Alight)
	}
	if p.MaxBoardIdx != 1 || p.MinBoardIdx != 0 {
		t.Errorf("board extremes = max %d, min %d", p.MaxBoardIdx, p.MinBoardIdx)
	}
	if p.MaxAlightIdx != 2 || p.MinAlightIdx != 0 {
		t.Errorf("alight extremes = max %d, min %d", p.MaxAlightIdx, p.MinAlightIdx)
	}

	if _, err := h.Profile("2호선", "없는역"); err == nil {
		t.Error("Profile accepted an unknown station")
	}
}
