package chart

import (
	"bytes"
	"strings"
	"testing"

	"gonum.org/v1/plot/vg"
)

func testBars() []Bar {
	return []Bar{
		{Label: "강남", Value: 2100},
		{Label: "역삼", Value: 900},
		{Label: "선릉", Value: 400},
	}
}

func TestBarsRendersSVG(t *testing.T) {
	p, err := Bars("title", "x", "y", testBars(), RankPalette(3, HighlightRed))
	if err != nil {
		t.Fatalf("Bars: %v", err)
	}
	svg, err := SVG(p, 6*vg.Inch, 4*vg.Inch)
	if err != nil {
		t.Fatalf("SVG: %v", err)
	}
	if !strings.Contains(svg, "<svg") {
		t.Error("output is not SVG")
	}
	for _, label := range []string{"강남", "역삼", "선릉", "title"} {
		if !strings.Contains(svg, label) {
			t.Errorf("svg missing %q", label)
		}
	}
	// Highlight color present in one of the serializations vgsvg uses.
	lower := strings.ToLower(svg)
	if !strings.Contains(lower, "#ff4d4d") && !strings.Contains(lower, "rgb(255,77,77)") {
		t.Error("highlight color missing from svg")
	}
}

func TestBarsHorizontalRendersSVG(t *testing.T) {
	p, err := BarsHorizontal("top stations", "total", "station", testBars(), RankPalette(3, HighlightRed))
	if err != nil {
		t.Fatalf("BarsHorizontal: %v", err)
	}
	svg, err := SVG(p, 6*vg.Inch, 4*vg.Inch)
	if err != nil {
		t.Fatalf("SVG: %v", err)
	}
	if !strings.Contains(svg, "강남") {
		t.Error("svg missing top station label")
	}
}

func TestBarsValidation(t *testing.T) {
	if _, err := Bars("t", "x", "y", nil, nil); err == nil {
		t.Error("Bars accepted zero bars")
	}
	if _, err := Bars("t", "x", "y", testBars(), RankPalette(2, HighlightRed)); err == nil {
		t.Error("Bars accepted mismatched colors")
	}
}

func TestLinesRendersSVG(t *testing.T) {
	labels := []string{"06시-07시", "07시-08시", "08시-09시"}
	series := []LineSeries{
		{Name: "Boardings", Values: []float64{100, 900, 400}, MaxIdx: 1, MinIdx: 0},
		{Name: "Alightings", Values: []float64{80, 300, 700}, MaxIdx: 2, MinIdx: 0},
	}
	p, err := Lines("profile", "band", "passengers", labels, series)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	svg, err := SVG(p, 8*vg.Inch, 4*vg.Inch)
	if err != nil {
		t.Fatalf("SVG: %v", err)
	}
	for _, want := range []string{"Boardings", "Alightings", "06시-07시"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestLinesValidation(t *testing.T) {
	if _, err := Lines("t", "x", "y", []string{"a"}, nil); err == nil {
		t.Error("Lines accepted zero series")
	}
	short := []LineSeries{{Name: "s", Values: []float64{1}}}
	if _, err := Lines("t", "x", "y", []string{"a", "b"}, short); err == nil {
		t.Error("Lines accepted a series shorter than the labels")
	}
}

func TestWritePNG(t *testing.T) {
	bars := []Bar{{Label: "a", Value: 3}, {Label: "b", Value: 1}}
	p, err := Bars("t", "x", "y", bars, RankPalette(2, HighlightRed))
	if err != nil {
		t.Fatalf("Bars: %v", err)
	}
	var buf bytes.Buffer
	if err := WritePNG(p, 4*vg.Inch, 3*vg.Inch, &buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not PNG")
	}
}
