// Package server serves the dashboards as HTML pages: a server-rendered SVG
// chart plus a filterable table per dataset, filters as query parameters.
package server

import (
	"fmt"
	"html/template"
	"image/color"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"csvdash/internal/chart"
	"csvdash/internal/config"
	"csvdash/internal/dataset"
	"csvdash/internal/export"
	"csvdash/internal/ingest"
)

const maxTableRows = 100

// Server wires config, the caching loader and the HTTP handlers.
type Server struct {
	cfg    *config.Global
	loader *dataset.Loader
	logger *zap.Logger
	mux    *http.ServeMux
}

// New builds a Server from configuration.
func New(cfg *config.Global, logger *zap.Logger) (*Server, error) {
	loader, err := dataset.NewLoader(cfg.CacheEntries)
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, loader: loader, logger: logger, mux: http.NewServeMux()}
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/mbti", s.handleMBTI)
	s.mux.HandleFunc("/ridership", s.handleRidership)
	s.mux.HandleFunc("/ridership.csv", s.handleRidershipCSV)
	s.mux.HandleFunc("/hourly", s.handleHourly)
	s.mux.HandleFunc("/activists", s.handleActivists)
	s.mux.HandleFunc("/activists.csv", s.handleActivistsCSV)
	s.mux.HandleFunc("/activists_summary.csv", s.handleActivistsSummaryCSV)
	s.mux.HandleFunc("/crime", s.handleCrime)
	return s, nil
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.withAccessLog(s.mux)
}

// ListenAndServe starts the server on the configured address.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", zap.String("addr", s.cfg.ListenAddr))
	return http.ListenAndServe(s.cfg.ListenAddr, s.Handler())
}

func (s *Server) loadTable(file string) (*ingest.Table, error) {
	return s.loader.Load(s.cfg.DatasetPath(file), ingest.Options{MaxRows: s.cfg.MaxRows})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	pages := []indexPage{
		{Name: "Country MBTI Explorer", Path: "/mbti", Desc: "MBTI type distribution per country", File: s.cfg.MBTIFile},
		{Name: "Subway Ridership", Path: "/ridership", Desc: "busiest stations per day and line", File: s.cfg.RidershipFile},
		{Name: "Hourly Boardings", Path: "/hourly", Desc: "boardings and alightings by time band", File: s.cfg.HourlyFile},
		{Name: "Independence Activists", Path: "/activists", Desc: "birth and death months", File: s.cfg.ActivistsFile},
		{Name: "Crime Statistics", Path: "/crime", Desc: "offenses by category and district", File: s.cfg.CrimeFile},
	}
	for i := range pages {
		_, err := s.loadTable(pages[i].File)
		pages[i].Available = err == nil
	}
	s.render(w, indexTemplate, indexData{Title: "Dashboards", Pages: pages})
}

func (s *Server) handleMBTI(w http.ResponseWriter, r *http.Request) {
	t, err := s.loadTable(s.cfg.MBTIFile)
	if err != nil {
		s.renderMissing(w, "Country MBTI Explorer", s.cfg.MBTIFile, err)
		return
	}
	m, err := dataset.LoadMBTI(t)
	if err != nil {
		s.fail(w, err)
		return
	}
	countries := m.Countries()
	if len(countries) == 0 {
		s.fail(w, fmt.Errorf("mbti: no countries"))
		return
	}
	country := queryDefault(r, "country", countries[0])
	mbtiType := queryDefault(r, "type", m.Types[0])
	topN := queryInt(r, "top", s.cfg.DefaultTopN)

	page := pageData{
		Title: "Country MBTI Explorer",
		Selects: []selectControl{
			{Label: "Country", Name: "country", Selected: country, Options: countries},
			{Label: "Top countries by type", Name: "type", Selected: mbtiType, Options: m.Types},
		},
		Numbers: []numberControl{{Label: "Top K", Name: "top", Value: topN}},
	}
	if len(m.Types) != dataset.MBTITypeCount {
		page.Notice = fmt.Sprintf("found %d type columns; expected %d, continuing with what is there", len(m.Types), dataset.MBTITypeCount)
	}

	dist, err := m.Distribution(country)
	if err != nil {
		s.fail(w, err)
		return
	}
	svg, err := s.barSVG(
		fmt.Sprintf("MBTI distribution for %s", country), "MBTI type", "Proportion",
		dist, chart.RankPalette(len(dist), chart.HighlightRed), false)
	if err != nil {
		s.fail(w, err)
		return
	}
	page.ChartSVG = svg

	top, err := m.TopCountries(mbtiType, topN)
	if err != nil {
		s.fail(w, err)
		return
	}
	extra, err := s.barSVG(
		fmt.Sprintf("Top %d countries by %s", len(top), mbtiType), mbtiType, "Country",
		top, chart.RankPalette(len(top), chart.HighlightRed), true)
	if err != nil {
		s.fail(w, err)
		return
	}
	page.ExtraSVG = extra
	page.Table = valueTable("MBTI", "Value", dist)
	s.render(w, pageTemplate, page)
}

func (s *Server) ridership(w http.ResponseWriter) (*dataset.Ridership, bool) {
	t, err := s.loadTable(s.cfg.RidershipFile)
	if err != nil {
		s.renderMissing(w, "Subway Ridership", s.cfg.RidershipFile, err)
		return nil, false
	}
	rd, err := dataset.LoadRidership(t)
	if err != nil {
		s.fail(w, err)
		return nil, false
	}
	return rd, true
}

func (s *Server) handleRidership(w http.ResponseWriter, r *http.Request) {
	rd, ok := s.ridership(w)
	if !ok {
		return
	}
	dates := rd.Dates(0, 0)
	if len(dates) == 0 {
		s.fail(w, fmt.Errorf("ridership: no parsable dates"))
		return
	}
	date := queryDefault(r, "date", dates[0])
	lines := rd.Lines(date)
	if len(lines) == 0 {
		s.render(w, pageTemplate, pageData{
			Title:   "Subway Ridership",
			Notice:  fmt.Sprintf("no rows for %s", date),
			Selects: []selectControl{{Label: "Date", Name: "date", Selected: date, Options: dates}},
		})
		return
	}
	line := queryDefault(r, "line", lines[0])
	topN := queryInt(r, "top", s.cfg.DefaultTopN)

	top, err := rd.TopStations(date, line, topN)
	if err != nil {
		s.fail(w, err)
		return
	}
	svg, err := s.barSVG(
		fmt.Sprintf("%s — %s top %d stations (boardings + alightings)", date, line, len(top)),
		"Total", "Station",
		top, chart.RankPalette(len(top), chart.HighlightRed), true)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, pageTemplate, pageData{
		Title: "Subway Ridership",
		Selects: []selectControl{
			{Label: "Date", Name: "date", Selected: date, Options: dates},
			{Label: "Line", Name: "line", Selected: line, Options: lines},
		},
		Numbers:      []numberControl{{Label: "Top N", Name: "top", Value: topN}},
		DownloadPath: fmt.Sprintf("/ridership.csv?date=%s&line=%s", template.URLQueryEscaper(date), template.URLQueryEscaper(line)),
		ChartSVG:     svg,
		Table:        valueTable("Station", "Total", top),
	})
}

func (s *Server) handleRidershipCSV(w http.ResponseWriter, r *http.Request) {
	rd, ok := s.ridership(w)
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	line := r.URL.Query().Get("line")
	header, rows := rd.FilteredRows(date, line)
	if header == nil {
		http.Error(w, "no rows for given date and line", http.StatusNotFound)
		return
	}
	s.sendCSV(w, fmt.Sprintf("ridership_%s.csv", date), header, rows)
}

func (s *Server) handleHourly(w http.ResponseWriter, r *http.Request) {
	t, err := s.loadTable(s.cfg.HourlyFile)
	if err != nil {
		s.renderMissing(w, "Hourly Boardings", s.cfg.HourlyFile, err)
		return
	}
	h, err := dataset.LoadHourly(t)
	if err != nil {
		s.fail(w, err)
		return
	}
	linesOpt := h.Lines()
	if len(linesOpt) == 0 {
		s.fail(w, fmt.Errorf("hourly: no lines"))
		return
	}
	line := queryDefault(r, "line", linesOpt[0])
	stations := h.Stations(line)
	if len(stations) == 0 {
		s.fail(w, fmt.Errorf("hourly: no stations on %s", line))
		return
	}
	station := queryDefault(r, "station", stations[0])

	p, err := h.Profile(line, station)
	if err != nil {
		s.fail(w, err)
		return
	}
	plt, err := chart.Lines(
		fmt.Sprintf("%s %s by time band", line, station), "Time band", "Passengers",
		p.Labels,
		[]chart.LineSeries{
			{Name: "Boardings", Values: p.Board, MaxIdx: p.MaxBoardIdx, MinIdx: p.MinBoardIdx},
			{Name: "Alightings", Values: p.Alight, MaxIdx: p.MaxAlightIdx, MinIdx: p.MinAlightIdx},
		})
	if err != nil {
		s.fail(w, err)
		return
	}
	svg, err := chart.SVG(plt, 10*vg.Inch, 5*vg.Inch)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, pageTemplate, pageData{
		Title: "Hourly Boardings",
		Selects: []selectControl{
			{Label: "Line", Name: "line", Selected: line, Options: linesOpt},
			{Label: "Station", Name: "station", Selected: station, Options: stations},
		},
		Stats: fmt.Sprintf("peak boarding %s (%.0f) · low %s (%.0f) · peak alighting %s (%.0f) · low %s (%.0f)",
			p.Labels[p.MaxBoardIdx], p.Board[p.MaxBoardIdx],
			p.Labels[p.MinBoardIdx], p.Board[p.MinBoardIdx],
			p.Labels[p.MaxAlightIdx], p.Alight[p.MaxAlightIdx],
			p.Labels[p.MinAlightIdx], p.Alight[p.MinAlightIdx]),
		ChartSVG: template.HTML(svg),
	})
}

func (s *Server) activists(w http.ResponseWriter) (*dataset.Activists, bool) {
	t, err := s.loadTable(s.cfg.ActivistsFile)
	if err != nil {
		s.renderMissing(w, "Independence Activists", s.cfg.ActivistsFile, err)
		return nil, false
	}
	a, err := dataset.LoadActivists(t)
	if err != nil {
		s.fail(w, err)
		return nil, false
	}
	return a, true
}

func (s *Server) handleActivists(w http.ResponseWriter, r *http.Request) {
	a, ok := s.activists(w)
	if !ok {
		return
	}
	month := queryInt(r, "month", 1)
	if month < 1 || month > 12 {
		month = 1
	}
	hist := a.MonthHistogram()
	births := make([]dataset.LabelValue, len(hist))
	deaths := make([]dataset.LabelValue, len(hist))
	birthVals := make([]float64, len(hist))
	deathVals := make([]float64, len(hist))
	for i, mc := range hist {
		births[i] = dataset.LabelValue{Label: mc.MonthName, Value: float64(mc.Births)}
		deaths[i] = dataset.LabelValue{Label: mc.MonthName, Value: float64(mc.Deaths)}
		birthVals[i] = float64(mc.Births)
		deathVals[i] = float64(mc.Deaths)
	}
	birthSVG, err := s.barSVG("Births per month", "Month", "People",
		births, chart.ValuePalette(birthVals, chart.HighlightRed), false)
	if err != nil {
		s.fail(w, err)
		return
	}
	deathSVG, err := s.barSVG("Deaths per month", "Month", "People",
		deaths, chart.ValuePalette(deathVals, chart.HighlightBlue), false)
	if err != nil {
		s.fail(w, err)
		return
	}

	header, rows := a.BornIn(month)
	truncated := false
	if len(rows) > maxTableRows {
		rows = rows[:maxTableRows]
		truncated = true
	}
	st := a.Stats()
	months := make([]string, 12)
	for i := range months {
		months[i] = strconv.Itoa(i + 1)
	}
	s.render(w, pageTemplate, pageData{
		Title: "Independence Activists",
		Selects: []selectControl{
			{Label: "Birth month", Name: "month", Selected: strconv.Itoa(month), Options: months},
		},
		Stats: fmt.Sprintf("rows %d · birth dates parsed %d · unparsed %d · death dates parsed %d (birth column %q, death column %q)",
			st.Total, st.ValidBirth, st.InvalidBirth, st.ValidDeath, a.BirthCol, a.DeathCol),
		DownloadPath: fmt.Sprintf("/activists.csv?month=%d", month),
		ChartSVG:     birthSVG,
		ExtraSVG:     deathSVG,
		Table:        &tableData{Header: header, Rows: rows, Truncated: truncated},
	})
}

func (s *Server) handleActivistsCSV(w http.ResponseWriter, r *http.Request) {
	a, ok := s.activists(w)
	if !ok {
		return
	}
	month := queryInt(r, "month", 0)
	if month < 1 || month > 12 {
		http.Error(w, "month must be 1..12", http.StatusBadRequest)
		return
	}
	header, rows := a.BornIn(month)
	s.sendCSV(w, fmt.Sprintf("activists_month_%d.csv", month), header, rows)
}

func (s *Server) handleActivistsSummaryCSV(w http.ResponseWriter, r *http.Request) {
	a, ok := s.activists(w)
	if !ok {
		return
	}
	header, rows := a.SummaryRows()
	s.sendCSV(w, "summary_month_birth_death.csv", header, rows)
}

func (s *Server) handleCrime(w http.ResponseWriter, r *http.Request) {
	t, err := s.loadTable(s.cfg.CrimeFile)
	if err != nil {
		s.renderMissing(w, "Crime Statistics", s.cfg.CrimeFile, err)
		return
	}
	c, err := dataset.LoadCrime(t)
	if err != nil {
		s.fail(w, err)
		return
	}
	cats := c.Categories()
	if len(cats) == 0 {
		s.fail(w, fmt.Errorf("crime: no categories"))
		return
	}
	category := queryDefault(r, "category", cats[0])
	topN := queryInt(r, "top", s.cfg.DefaultTopN)

	breakdown, err := c.RegionBreakdown(category, topN)
	if err != nil {
		s.fail(w, err)
		return
	}
	svg, err := s.barSVG(
		fmt.Sprintf("%s — top %d districts", category, len(breakdown)), "Offenses", "District",
		breakdown, chart.RankPalette(len(breakdown), chart.HighlightRed), true)
	if err != nil {
		s.fail(w, err)
		return
	}
	totals := c.CategoryTotals()
	extra, err := s.barSVG("Offenses by category", "Category", "Offenses",
		totals, chart.RankPalette(len(totals), chart.HighlightRed), false)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, pageTemplate, pageData{
		Title: "Crime Statistics",
		Selects: []selectControl{
			{Label: "Category", Name: "category", Selected: category, Options: cats},
		},
		Numbers:  []numberControl{{Label: "Top N", Name: "top", Value: topN}},
		ChartSVG: svg,
		ExtraSVG: extra,
		Table:    valueTable("District", "Offenses", breakdown),
	})
}

// barSVG renders a bar chart sized for the page.
func (s *Server) barSVG(title, xLabel, yLabel string, bars []dataset.LabelValue, colors []color.Color, horizontal bool) (template.HTML, error) {
	cbars := make([]chart.Bar, len(bars))
	for i, b := range bars {
		cbars[i] = chart.Bar{Label: b.Label, Value: b.Value}
	}
	var (
		plt *plot.Plot
		err error
		w   = 9 * vg.Inch
		h   = 4.5 * vg.Inch
	)
	if horizontal {
		plt, err = chart.BarsHorizontal(title, xLabel, yLabel, cbars, colors)
		h = vg.Length(float64(len(bars))*0.35+1.5) * vg.Inch
	} else {
		plt, err = chart.Bars(title, xLabel, yLabel, cbars, colors)
	}
	if err != nil {
		return "", err
	}
	svg, err := chart.SVG(plt, w, h)
	if err != nil {
		return "", err
	}
	return template.HTML(svg), nil
}

func queryDefault(r *http.Request, key, def string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return def
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func valueTable(labelHeader, valueHeader string, vals []dataset.LabelValue) *tableData {
	td := &tableData{Header: []string{labelHeader, valueHeader}}
	for _, v := range vals {
		td.Rows = append(td.Rows, []string{v.Label, strconv.FormatFloat(v.Value, 'f', -1, 64)})
	}
	return td
}

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		s.logger.Error("render template", zap.Error(err))
	}
}

func (s *Server) renderMissing(w http.ResponseWriter, title, file string, err error) {
	s.logger.Warn("dataset unavailable", zap.String("file", file), zap.Error(err))
	s.render(w, pageTemplate, pageData{
		Title:  title,
		Notice: fmt.Sprintf("dataset not available: place %s in the data directory (%v)", file, err),
	})
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("handler", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) sendCSV(w http.ResponseWriter, filename string, header []string, rows [][]string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteCSV(w, header, rows); err != nil {
		s.logger.Error("write csv", zap.Error(err))
	}
}
