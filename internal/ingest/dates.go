package ingest

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// YearPivot is the two-digit year cutoff: YY <= pivot parses as 20YY,
// otherwise 19YY.
const YearPivot = 25

var nullTokens = map[string]bool{
	"":     true,
	"nan":  true,
	"none": true,
	"-":    true,
	"미상":   true, // unknown
	"불명":   true, // unclear
}

var (
	reKoreanDateUnits = regexp.MustCompile(`년|월|일|\s+`)
	reNonDateChars    = regexp.MustCompile(`[^0-9\-./]`)
	reHyphenRuns      = regexp.MustCompile(`-+`)
	reEightDigits     = regexp.MustCompile(`^\d{8}$`)
	reSixDigits       = regexp.MustCompile(`^\d{6}$`)
)

var fallbackLayouts = []string{
	"2006-1-2",
	"2006-1",
	"2006",
}

// ParseDateFlexible parses the messy date strings found in public record
// CSVs: "1902년 3월 1일", "1902.03.01", "19020301", "020301", "1902-3-1".
// Null markers (empty, "미상", "불명", "-") report ok=false.
func ParseDateFlexible(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if nullTokens[strings.ToLower(s)] {
		return time.Time{}, false
	}
	s = reKoreanDateUnits.ReplaceAllString(s, "-")
	s = reNonDateChars.ReplaceAllString(s, "")
	s = strings.NewReplacer(".", "-", "/", "-").Replace(s)
	s = strings.Trim(reHyphenRuns.ReplaceAllString(s, "-"), "-")
	if s == "" {
		return time.Time{}, false
	}

	if reEightDigits.MatchString(s) {
		if t, err := time.Parse("20060102", s); err == nil {
			return t, true
		}
		return time.Time{}, false
	}
	if reSixDigits.MatchString(s) {
		yy := int(s[0]-'0')*10 + int(s[1]-'0')
		year := 1900 + yy
		if yy <= YearPivot {
			year = 2000 + yy
		}
		if t, err := time.Parse("20060102", fmt.Sprintf("%04d%s", year, s[2:])); err == nil {
			return t, true
		}
		return time.Time{}, false
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthOf returns the 1..12 month of a date string, or 0 when it cannot be
// parsed. Month "00" in zero-padded records also reports 0.
func MonthOf(s string) int {
	t, ok := ParseDateFlexible(s)
	if !ok {
		return 0
	}
	return int(t.Month())
}

// ParseCompactDate parses a strict YYYYMMDD value, the format used by the
// ridership 사용일자 column.
func ParseCompactDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if !reEightDigits.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
