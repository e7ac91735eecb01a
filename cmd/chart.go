package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"csvdash/internal/chart"
	cfgpkg "csvdash/internal/config"
	"csvdash/internal/dataset"
	"csvdash/internal/ingest"
)

var (
	chartDashboard string
	chartInput     string
	chartOut       string
	chartCountry   string
	chartType      string
	chartDate      string
	chartLine      string
	chartStation   string
	chartCategory  string
	chartTop       int
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render a dashboard chart to SVG or PNG",
	Long: `Renders one dashboard chart to a file, chosen by --dashboard:

  mbti       MBTI distribution for --country
  ridership  top stations for --date and --line
  hourly     boardings/alightings profile for --line and --station
  activists  births per month histogram
  crime      district breakdown for --category

The output format follows the --out extension (.svg or .png).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		if chartOut == "" {
			return fmt.Errorf("missing --out path")
		}
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(chartOut)), ".")
		if format != "svg" && format != "png" {
			return fmt.Errorf("unsupported output extension %q (use .svg or .png)", filepath.Ext(chartOut))
		}
		if chartTop <= 0 {
			chartTop = c.DefaultTopN
		}

		p, wide, err := buildChart(c)
		if err != nil {
			return err
		}
		f, err := os.Create(chartOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w, h := 9*vg.Inch, 4.5*vg.Inch
		if wide {
			w, h = 10*vg.Inch, 5*vg.Inch
		}
		if format == "png" {
			err = chart.WritePNG(p, w, h, f)
		} else {
			err = chart.WriteSVG(p, w, h, f)
		}
		if err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s chart to %s\n", chartDashboard, chartOut)
		return nil
	},
}

func buildChart(c *cfgpkg.Global) (*plot.Plot, bool, error) {
	load := func(file string) (*ingest.Table, error) {
		path := c.DatasetPath(file)
		if chartInput != "" {
			path = chartInput
		}
		if strings.HasSuffix(strings.ToLower(path), ".zip") {
			return ingest.ReadCSVFromZip(path, ingest.Options{MaxRows: c.MaxRows})
		}
		return ingest.ReadCSV(path, ingest.Options{MaxRows: c.MaxRows})
	}

	switch chartDashboard {
	case "mbti":
		t, err := load(c.MBTIFile)
		if err != nil {
			return nil, false, err
		}
		m, err := dataset.LoadMBTI(t)
		if err != nil {
			return nil, false, err
		}
		if chartType != "" {
			top, err := m.TopCountries(chartType, chartTop)
			if err != nil {
				return nil, false, err
			}
			p, err := chart.BarsHorizontal(
				fmt.Sprintf("Top %d countries by %s", len(top), strings.ToUpper(chartType)),
				"Proportion", "Country", toBars(top), chart.RankPalette(len(top), chart.HighlightRed))
			return p, false, err
		}
		country := chartCountry
		if country == "" {
			countries := m.Countries()
			if len(countries) == 0 {
				return nil, false, fmt.Errorf("mbti: no countries")
			}
			country = countries[0]
		}
		dist, err := m.Distribution(country)
		if err != nil {
			return nil, false, err
		}
		p, err := chart.Bars(fmt.Sprintf("MBTI distribution for %s", country),
			"MBTI type", "Proportion", toBars(dist), chart.RankPalette(len(dist), chart.HighlightRed))
		return p, false, err

	case "ridership":
		t, err := load(c.RidershipFile)
		if err != nil {
			return nil, false, err
		}
		rd, err := dataset.LoadRidership(t)
		if err != nil {
			return nil, false, err
		}
		date, line := chartDate, chartLine
		if date == "" {
			dates := rd.Dates(0, 0)
			if len(dates) == 0 {
				return nil, false, fmt.Errorf("ridership: no parsable dates")
			}
			date = dates[0]
		}
		if line == "" {
			lines := rd.Lines(date)
			if len(lines) == 0 {
				return nil, false, fmt.Errorf("ridership: no lines on %s", date)
			}
			line = lines[0]
		}
		top, err := rd.TopStations(date, line, chartTop)
		if err != nil {
			return nil, false, err
		}
		p, err := chart.BarsHorizontal(
			fmt.Sprintf("%s — %s top %d stations", date, line, len(top)),
			"Total", "Station", toBars(top), chart.RankPalette(len(top), chart.HighlightRed))
		return p, false, err

	case "hourly":
		t, err := load(c.HourlyFile)
		if err != nil {
			return nil, false, err
		}
		h, err := dataset.LoadHourly(t)
		if err != nil {
			return nil, false, err
		}
		line, station := chartLine, chartStation
		if line == "" {
			lines := h.Lines()
			if len(lines) == 0 {
				return nil, false, fmt.Errorf("hourly: no lines")
			}
			line = lines[0]
		}
		if station == "" {
			stations := h.Stations(line)
			if len(stations) == 0 {
				return nil, false, fmt.Errorf("hourly: no stations on %s", line)
			}
			station = stations[0]
		}
		prof, err := h.Profile(line, station)
		if err != nil {
			return nil, false, err
		}
		p, err := chart.Lines(fmt.Sprintf("%s %s by time band", line, station),
			"Time band", "Passengers", prof.Labels,
			[]chart.LineSeries{
				{Name: "Boardings", Values: prof.Board, MaxIdx: prof.MaxBoardIdx, MinIdx: prof.MinBoardIdx},
				{Name: "Alightings", Values: prof.Alight, MaxIdx: prof.MaxAlightIdx, MinIdx: prof.MinAlightIdx},
			})
		return p, true, err

	case "activists":
		t, err := load(c.ActivistsFile)
		if err != nil {
			return nil, false, err
		}
		a, err := dataset.LoadActivists(t)
		if err != nil {
			return nil, false, err
		}
		hist := a.MonthHistogram()
		bars := make([]chart.Bar, len(hist))
		vals := make([]float64, len(hist))
		for i, mc := range hist {
			bars[i] = chart.Bar{Label: mc.MonthName, Value: float64(mc.Births)}
			vals[i] = float64(mc.Births)
		}
		p, err := chart.Bars("Births per month", "Month", "People",
			bars, chart.ValuePalette(vals, chart.HighlightRed))
		return p, false, err

	case "crime":
		t, err := load(c.CrimeFile)
		if err != nil {
			return nil, false, err
		}
		cr, err := dataset.LoadCrime(t)
		if err != nil {
			return nil, false, err
		}
		category := chartCategory
		if category == "" {
			cats := cr.Categories()
			if len(cats) == 0 {
				return nil, false, fmt.Errorf("crime: no categories")
			}
			category = cats[0]
		}
		breakdown, err := cr.RegionBreakdown(category, chartTop)
		if err != nil {
			return nil, false, err
		}
		p, err := chart.BarsHorizontal(
			fmt.Sprintf("%s — top %d districts", category, len(breakdown)),
			"Offenses", "District", toBars(breakdown), chart.RankPalette(len(breakdown), chart.HighlightRed))
		return p, false, err
	}
	return nil, false, fmt.Errorf("unknown --dashboard %q (mbti|ridership|hourly|activists|crime)", chartDashboard)
}

func toBars(vals []dataset.LabelValue) []chart.Bar {
	out := make([]chart.Bar, len(vals))
	for i, v := range vals {
		out[i] = chart.Bar{Label: v.Label, Value: v.Value}
	}
	return out
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVar(&chartDashboard, "dashboard", "", "dashboard to render: mbti|ridership|hourly|activists|crime")
	chartCmd.Flags().StringVar(&chartInput, "input", "", "CSV (or zipped CSV) path overriding the configured dataset file")
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "", "output file (.svg or .png)")
	chartCmd.Flags().StringVar(&chartCountry, "country", "", "mbti: country to chart (default first)")
	chartCmd.Flags().StringVar(&chartType, "type", "", "mbti: type column for rankings")
	chartCmd.Flags().StringVar(&chartDate, "date", "", "ridership: date YYYY-MM-DD (default first)")
	chartCmd.Flags().StringVar(&chartLine, "line", "", "ridership/hourly: line name (default first)")
	chartCmd.Flags().StringVar(&chartStation, "station", "", "hourly: station name (default first)")
	chartCmd.Flags().StringVar(&chartCategory, "category", "", "crime: offense category (default first)")
	chartCmd.Flags().IntVar(&chartTop, "top", 0, "top-N cutoff for ranked charts (default from config)")
	_ = chartCmd.MarkFlagRequired("dashboard")
	_ = chartCmd.MarkFlagRequired("out")
}
