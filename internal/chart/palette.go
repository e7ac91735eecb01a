package chart

import "image/color"

// Highlight colors. Red marks the top bar on most pages; the death-month
// chart uses the flag blue instead.
var (
	HighlightRed  = color.RGBA{R: 0xFF, G: 0x4D, B: 0x4D, A: 0xFF} // #ff4d4d
	HighlightBlue = color.RGBA{R: 0x00, G: 0x38, B: 0xA8, A: 0xFF} // #0038a8
)

// Gradient endpoints, light blue to deep blue.
var (
	gradientStart = [3]float64{210, 230, 250}
	gradientEnd   = [3]float64{10, 60, 130}
)

// Gradient returns n colors interpolated linearly from light to deep blue.
func Gradient(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	out := make([]color.Color, n)
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = color.RGBA{
			R: lerpByte(gradientStart[0], gradientEnd[0], t),
			G: lerpByte(gradientStart[1], gradientEnd[1], t),
			B: lerpByte(gradientStart[2], gradientEnd[2], t),
			A: 0xFF,
		}
	}
	return out
}

// RankPalette colors bars already sorted descending: the first bar gets the
// highlight, the rest the blue gradient.
func RankPalette(n int, highlight color.Color) []color.Color {
	if n <= 0 {
		return nil
	}
	out := make([]color.Color, 0, n)
	out = append(out, highlight)
	out = append(out, Gradient(n-1)...)
	return out
}

// ValuePalette colors bars in place: the largest value gets the highlight,
// the others the gradient by position. Used by the month histograms, where
// the x axis stays in calendar order.
func ValuePalette(values []float64, highlight color.Color) []color.Color {
	n := len(values)
	if n == 0 {
		return nil
	}
	top := 0
	for i, v := range values {
		if v > values[top] {
			top = i
		}
	}
	grad := Gradient(n)
	out := make([]color.Color, n)
	for i := range values {
		if i == top {
			out[i] = highlight
		} else {
			out[i] = grad[i]
		}
	}
	return out
}

func lerpByte(a, b, t float64) uint8 {
	return uint8((1-t)*a + t*b)
}
