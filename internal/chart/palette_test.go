package chart

import (
	"image/color"
	"testing"
)

func TestGradient(t *testing.T) {
	if got := Gradient(0); got != nil {
		t.Errorf("Gradient(0) = %v", got)
	}
	one := Gradient(1)
	if len(one) != 1 {
		t.Fatalf("Gradient(1) = %v", one)
	}
	if one[0] != (color.RGBA{R: 210, G: 230, B: 250, A: 0xFF}) {
		t.Errorf("Gradient(1)[0] = %v", one[0])
	}

	three := Gradient(3)
	if three[0] != (color.RGBA{R: 210, G: 230, B: 250, A: 0xFF}) {
		t.Errorf("first = %v", three[0])
	}
	if three[2] != (color.RGBA{R: 10, G: 60, B: 130, A: 0xFF}) {
		t.Errorf("last = %v", three[2])
	}
	if three[1] != (color.RGBA{R: 110, G: 145, B: 190, A: 0xFF}) {
		t.Errorf("middle = %v", three[1])
	}
}

func TestRankPalette(t *testing.T) {
	p := RankPalette(4, HighlightRed)
	if len(p) != 4 {
		t.Fatalf("len = %d", len(p))
	}
	if p[0] != HighlightRed {
		t.Errorf("first = %v", p[0])
	}
	if p[1] != (color.RGBA{R: 210, G: 230, B: 250, A: 0xFF}) {
		t.Errorf("second = %v", p[1])
	}
	if RankPalette(0, HighlightRed) != nil {
		t.Error("RankPalette(0) not nil")
	}
}

func TestValuePalette(t *testing.T) {
	vals := []float64{3, 9, 1, 9}
	p := ValuePalette(vals, HighlightBlue)
	if len(p) != 4 {
		t.Fatalf("len = %d", len(p))
	}
	// The first occurrence of the max wins.
	if p[1] != HighlightBlue {
		t.Errorf("max bar = %v", p[1])
	}
	if p[3] == HighlightBlue {
		t.Error("second max also highlighted")
	}
	if p[0] == HighlightBlue {
		t.Error("non-max bar highlighted")
	}
	if ValuePalette(nil, HighlightBlue) != nil {
		t.Error("ValuePalette(nil) not nil")
	}
}
