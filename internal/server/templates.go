package server

import "html/template"

// Templates are inlined; the server ships as a single binary with no asset
// directory.

const layoutTmpl = `{{define "layout"}}<!doctype html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>{{.Title}} — csvdash</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 72rem; padding: 0 1rem; color: #222; }
nav a { margin-right: 1rem; }
form.filters { margin: 1rem 0; padding: .75rem; background: #f4f6fa; border-radius: 6px; }
form.filters label { margin-right: 1rem; }
table { border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #cdd4df; padding: .3rem .6rem; text-align: left; }
th { background: #eef1f6; }
.notice { padding: .75rem; background: #fff6e5; border: 1px solid #e8cf96; border-radius: 6px; }
.stats { color: #555; font-size: .9rem; }
figure { margin: 1rem 0; overflow-x: auto; }
</style>
</head>
<body>
<nav>
<a href="/">Home</a>
<a href="/mbti">MBTI</a>
<a href="/ridership">Ridership</a>
<a href="/hourly">Hourly</a>
<a href="/activists">Activists</a>
<a href="/crime">Crime</a>
</nav>
<h1>{{.Title}}</h1>
{{if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}
{{template "content" .}}
</body>
</html>{{end}}`

const indexContent = `{{define "content"}}
<p>Single-page CSV dashboards. Place the dataset files in the configured data
directory; each page below loads, cleans and charts one of them.</p>
<ul>
{{range .Pages}}
<li><a href="{{.Path}}">{{.Name}}</a> — {{.Desc}} {{if not .Available}}<em>(dataset file not found: {{.File}})</em>{{end}}</li>
{{end}}
</ul>
{{end}}`

const chartPageContent = `{{define "content"}}
<form class="filters" method="get">
{{range .Selects}}
<label>{{.Label}}
<select name="{{.Name}}">
{{$sel := .Selected}}{{range .Options}}<option value="{{.}}"{{if eq . $sel}} selected{{end}}>{{.}}</option>{{end}}
</select>
</label>
{{end}}
{{range .Numbers}}
<label>{{.Label}} <input type="number" name="{{.Name}}" value="{{.Value}}" min="1" max="50" size="4"></label>
{{end}}
<button type="submit">Apply</button>
{{if .DownloadPath}} <a href="{{.DownloadPath}}">Download CSV</a>{{end}}
</form>
{{if .Stats}}<p class="stats">{{.Stats}}</p>{{end}}
{{if .ChartSVG}}<figure>{{.ChartSVG}}</figure>{{end}}
{{if .ExtraSVG}}<figure>{{.ExtraSVG}}</figure>{{end}}
{{if .Table}}
<table>
<tr>{{range .Table.Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
</table>
{{if .Table.Truncated}}<p class="stats">showing first {{len .Table.Rows}} rows</p>{{end}}
{{end}}
{{end}}`

var (
	indexTemplate = template.Must(template.New("index").Parse(layoutTmpl + indexContent))
	pageTemplate  = template.Must(template.New("page").Parse(layoutTmpl + chartPageContent))
)

// selectControl is one dropdown filter.
type selectControl struct {
	Label    string
	Name     string
	Selected string
	Options  []string
}

// numberControl is one numeric filter (top-N and the like).
type numberControl struct {
	Label string
	Name  string
	Value int
}

// tableData is the filterable table below the chart.
type tableData struct {
	Header    []string
	Rows      [][]string
	Truncated bool
}

// pageData feeds the shared chart-page template.
type pageData struct {
	Title        string
	Notice       string
	Stats        string
	Selects      []selectControl
	Numbers      []numberControl
	DownloadPath string
	ChartSVG     template.HTML
	ExtraSVG     template.HTML
	Table        *tableData
}

// indexData feeds the landing page.
type indexData struct {
	Title  string
	Notice string
	Pages  []indexPage
}

type indexPage struct {
	Name      string
	Path      string
	Desc      string
	File      string
	Available bool
}
