package http

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/bft-labs/launchdash/internal/domain"
)

// Element ids of the page regions that events replace.
const (
	SiteSelectID        = "site-dropdown"
	PayloadSelectorID   = "payload-slider"
	ProportionRegionID  = "success-pie-chart"
	CorrelationRegionID = "success-payload-scatter-chart"
	RangeLabelID        = "payload-range-label"
)

// AllSitesLabel is the selector label of the all-sites option.
const AllSitesLabel = "All Sites"

const htmxScript = "https://unpkg.com/htmx.org@1.9.12"

// rangeGuard keeps the low handle of the payload selector at or below the
// high handle: the handle being dragged stops at the other one.
const rangeGuard = "var l=this.elements.low,h=this.elements.high;" +
	"if(+l.value>+h.value){if(event.target===l){l.value=h.value}else{h.value=l.value}}"

var views = template.Must(template.New("views").Funcs(template.FuncMap{
	"num": formatNum,
}).Parse(`
{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="` + htmxScript + `"></script>
<style>
body { font-family: sans-serif; margin: 2rem; }
h1 { text-align: center; color: #503D36; font-size: 40px; }
.chart { display: flex; justify-content: center; margin: 1rem 0; }
.range input { width: 40%; }
</style>
</head>
<body>
<main>
<h1>{{.Title}}</h1>
<select id="` + SiteSelectID + `" name="site" hx-post="/events/` + SiteSelectID + `" hx-trigger="change" hx-swap="none">
{{- range .Options}}
<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
</select>
{{template "proportion" .Proportion}}
<p>Payload range (Kg): {{template "range-label" .RangeLabel}}</p>
<form id="` + PayloadSelectorID + `" class="range" hx-post="/events/` + PayloadSelectorID + `" hx-trigger="change" hx-swap="none" oninput="` + rangeGuard + `">
<input type="range" name="low" min="{{num .Bounds.Low}}" max="{{num .Bounds.High}}" step="{{num .Step}}" value="{{num .Filter.Payload.Low}}">
<input type="range" name="high" min="{{num .Bounds.Low}}" max="{{num .Bounds.High}}" step="{{num .Step}}" value="{{num .Filter.Payload.High}}">
</form>
{{template "correlation" .Correlation}}
</main>
</body>
</html>
{{end}}

{{define "proportion"}}<div id="` + ProportionRegionID + `" class="chart"{{if .OOB}} hx-swap-oob="true"{{end}}>{{.SVG}}</div>{{end}}

{{define "correlation"}}<div id="` + CorrelationRegionID + `" class="chart"{{if .OOB}} hx-swap-oob="true"{{end}}>{{.SVG}}</div>{{end}}

{{define "range-label"}}<span id="` + RangeLabelID + `"{{if .OOB}} hx-swap-oob="true"{{end}}>{{num .Range.Low}} - {{num .Range.High}}</span>{{end}}

{{define "fragments"}}
{{- with .Proportion}}{{template "proportion" .}}{{end}}
{{- with .RangeLabel}}{{template "range-label" .}}{{end}}
{{- with .Correlation}}{{template "correlation" .}}{{end}}
{{- end}}
`))

type siteOption struct {
	Value    string
	Label    string
	Selected bool
}

type chartRegion struct {
	SVG template.HTML
	OOB bool
}

type rangeLabel struct {
	Range domain.PayloadRange
	OOB   bool
}

type pageData struct {
	Title       string
	Options     []siteOption
	Bounds      domain.PayloadRange
	Step        float64
	Filter      domain.FilterState
	Proportion  chartRegion
	Correlation chartRegion
	RangeLabel  rangeLabel
}

type fragmentData struct {
	Proportion  *chartRegion
	Correlation *chartRegion
	RangeLabel  *rangeLabel
}

func siteOptions(sites []domain.Site, selected domain.Site) []siteOption {
	opts := make([]siteOption, 0, len(sites)+1)
	opts = append(opts, siteOption{
		Value:    string(domain.AllSites),
		Label:    AllSitesLabel,
		Selected: selected.IsAll(),
	})
	for _, s := range sites {
		opts = append(opts, siteOption{
			Value:    string(s),
			Label:    string(s),
			Selected: s == selected,
		})
	}
	return opts
}

// render serves c. templ.Handler renders into a buffer first and answers
// 500 when the component fails, so no partial markup is sent.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	templ.Handler(c).ServeHTTP(w, r)
}

func pageView(d pageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return views.ExecuteTemplate(w, "page", d)
	})
}

func fragmentsView(d fragmentData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return views.ExecuteTemplate(w, "fragments", d)
	})
}

// inlineSVG drops anything before the root element, such as an XML prolog,
// so the document can be embedded in HTML.
func inlineSVG(doc []byte) template.HTML {
	if i := bytes.Index(doc, []byte("<svg")); i > 0 {
		doc = doc[i:]
	}
	return template.HTML(doc)
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
