package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"csvdash/internal/ingest"
)

// ProfileOptions controls column profiling.
type ProfileOptions struct {
	// SampleRows determines how many example rows the report includes.
	SampleRows int
	// GroupBy computes per-group numeric sums for the given column.
	GroupBy string
	// TopValues caps the listed category values per column.
	TopValues int
}

// DefaultProfileOptions returns reasonable defaults.
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{SampleRows: 5, TopValues: 8}
}

// ColumnProfile captures the inferred kind and statistics of one column.
type ColumnProfile struct {
	Name    string
	Kind    string // numeric|date|categorical|text
	NonNull int
	Missing int
	Unique  int

	Min, Max, Mean, Std float64

	TopValues []LabelValue
}

// GroupSum is one group's size and per-column numeric sums.
type GroupSum struct {
	Key  string
	Size int
	Sums map[string]float64
}

// Profile is a column-level report of a dataset.
type Profile struct {
	Name     string
	Encoding string
	Rows     int
	Cols     []ColumnProfile
	Samples  [][]string
	Groups   []GroupSum
}

// ProfileTable infers a kind per column (numeric, date, categorical or text)
// and accumulates basic statistics in one pass.
func ProfileTable(t *ingest.Table, opt ProfileOptions) *Profile {
	if opt.SampleRows <= 0 {
		opt.SampleRows = 5
	}
	if opt.TopValues <= 0 {
		opt.TopValues = 8
	}
	ncol := len(t.Header)

	type colAcc struct {
		nonNull int
		missing int
		numCnt  int
		dateCnt int
		txtCnt  int
		// Welford
		n    int
		mean float64
		m2   float64
		min  float64
		max  float64
		cats map[string]int
	}
	cols := make([]*colAcc, ncol)
	for i := range cols {
		cols[i] = &colAcc{min: math.Inf(1), max: math.Inf(-1), cats: map[string]int{}}
	}

	gbIdx := -1
	if opt.GroupBy != "" {
		gbIdx = t.ColumnIndex(opt.GroupBy)
	}
	groups := map[string]*GroupSum{}
	var groupOrder []string

	rep := &Profile{Name: t.Name, Encoding: t.Encoding, Rows: len(t.Rows)}
	for _, row := range t.Rows {
		if len(rep.Samples) < opt.SampleRows {
			rep.Samples = append(rep.Samples, row)
		}
		var g *GroupSum
		if gbIdx >= 0 {
			key := strings.TrimSpace(row[gbIdx])
			if key != "" {
				g = groups[key]
				if g == nil {
					g = &GroupSum{Key: key, Sums: map[string]float64{}}
					groups[key] = g
					groupOrder = append(groupOrder, key)
				}
				g.Size++
			}
		}
		for j := 0; j < ncol; j++ {
			v := strings.TrimSpace(row[j])
			c := cols[j]
			if v == "" {
				c.missing++
				continue
			}
			c.nonNull++
			if x, ok := ParseNumber(v); ok {
				c.numCnt++
				c.n++
				if x < c.min {
					c.min = x
				}
				if x > c.max {
					c.max = x
				}
				delta := x - c.mean
				c.mean += delta / float64(c.n)
				c.m2 += delta * (x - c.mean)
				if g != nil && j != gbIdx {
					g.Sums[t.Header[j]] += x
				}
				continue
			}
			if _, ok := ingest.ParseDateFlexible(v); ok {
				c.dateCnt++
				continue
			}
			c.txtCnt++
			if len(v) <= 64 && len(c.cats) <= 10000 {
				c.cats[v]++
			}
		}
	}

	rep.Cols = make([]ColumnProfile, 0, ncol)
	for j, c := range cols {
		p := ColumnProfile{Name: t.Header[j], NonNull: c.nonNull, Missing: c.missing}
		switch {
		case c.numCnt > 0 && c.numCnt >= c.dateCnt && c.numCnt >= c.txtCnt:
			p.Kind = "numeric"
			p.Min, p.Max, p.Mean = c.min, c.max, c.mean
			if c.n > 1 {
				p.Std = math.Sqrt(c.m2 / float64(c.n-1))
			}
		case c.dateCnt > 0 && c.dateCnt >= c.txtCnt:
			p.Kind = "date"
		case len(c.cats) > 0 && len(c.cats)*5 <= c.txtCnt*4:
			// mostly repeated short tokens
			p.Kind = "categorical"
			p.Unique = len(c.cats)
			p.TopValues = topCategories(c.cats, opt.TopValues)
		default:
			p.Kind = "text"
			p.Unique = len(c.cats)
		}
		rep.Cols = append(rep.Cols, p)
	}

	for _, key := range groupOrder {
		rep.Groups = append(rep.Groups, *groups[key])
	}
	sort.SliceStable(rep.Groups, func(i, j int) bool {
		if rep.Groups[i].Size == rep.Groups[j].Size {
			return rep.Groups[i].Key < rep.Groups[j].Key
		}
		return rep.Groups[i].Size > rep.Groups[j].Size
	})
	return rep
}

func topCategories(cats map[string]int, limit int) []LabelValue {
	out := make([]LabelValue, 0, len(cats))
	for k, v := range cats {
		out = append(out, LabelValue{Label: k, Value: float64(v)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value == out[j].Value {
			return out[i].Label < out[j].Label
		}
		return out[i].Value > out[j].Value
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Markdown renders the profile as a compact report.
func (p *Profile) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET PROFILE]\n")
	if p.Name != "" {
		fmt.Fprintf(&b, "File: %s\n", p.Name)
	}
	if p.Encoding != "" {
		fmt.Fprintf(&b, "Encoding: %s\n", p.Encoding)
	}
	fmt.Fprintf(&b, "Rows: %d\nColumns: %d\n\n", p.Rows, len(p.Cols))

	b.WriteString("[SCHEMA]\n")
	for _, c := range p.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100 / float64(total)
		}
		fmt.Fprintf(&b, "- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct)
		switch c.Kind {
		case "numeric":
			fmt.Fprintf(&b, " — min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std)
		case "categorical":
			if len(c.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					fmt.Fprintf(&b, "%s(%d)", safeVal(kv.Label), int(kv.Value))
				}
				if c.Unique > len(c.TopValues) {
					fmt.Fprintf(&b, "; unique=%d", c.Unique)
				}
			}
		}
		b.WriteString("\n")
	}

	if len(p.Groups) > 0 {
		b.WriteString("\n[GROUP-BY SUMMARY]\n")
		for _, g := range p.Groups {
			fmt.Fprintf(&b, "- %s (n=%d)\n", safeVal(g.Key), g.Size)
			keys := make([]string, 0, len(g.Sums))
			for k := range g.Sums {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			if len(keys) > 6 {
				keys = keys[:6]
			}
			for _, k := range keys {
				fmt.Fprintf(&b, "  • %s: sum %.4g\n", safeName(k), g.Sums[k])
			}
		}
	}

	if len(p.Samples) > 0 {
		b.WriteString("\n[SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range p.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Name))
		}
		b.WriteString(" |\n| ")
		for i := range p.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range p.Samples {
			b.WriteString("| ")
			for i := range p.Cols {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
