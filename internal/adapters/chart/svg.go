// Package chart renders chart inputs to SVG.
package chart

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bft-labs/launchdash/internal/domain"
	"github.com/bft-labs/launchdash/internal/ports"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 720
	DefaultHeight = 420
)

// Placeholder messages drawn when a chart has nothing to plot.
const (
	NoLaunchesMessage = "No launches"
	NoPointsMessage   = "No launches in payload range"
)

const dotWidth = 5

// SVGRenderer implements ports.ChartRenderer using go-chart.
type SVGRenderer struct {
	width  int
	height int
}

// NewSVGRenderer creates a renderer. Non-positive sizes fall back to the defaults.
func NewSVGRenderer(width, height int) *SVGRenderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &SVGRenderer{width: width, height: height}
}

// ContentType returns the media type of rendered charts.
func (r *SVGRenderer) ContentType() string {
	return "image/svg+xml"
}

// RenderProportion draws a pie chart.
func (r *SVGRenderer) RenderProportion(c domain.ProportionChart) ([]byte, error) {
	if c.Total() == 0 {
		return r.placeholder(c.Title, NoLaunchesMessage), nil
	}

	values := make([]gochart.Value, 0, len(c.Slices))
	for _, s := range c.Slices {
		values = append(values, gochart.Value{
			Label: html.EscapeString(fmt.Sprintf("%s (%d)", s.Label, s.Value)),
			Value: float64(s.Value),
		})
	}

	pie := gochart.PieChart{
		Title:  html.EscapeString(c.Title),
		Width:  r.width,
		Height: r.height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(gochart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render proportion chart: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderCorrelation draws a scatter of payload mass against outcome with one
// series per booster category.
func (r *SVGRenderer) RenderCorrelation(c domain.CorrelationChart) ([]byte, error) {
	title := correlationTitle(c.Site)
	if c.Empty() {
		return r.placeholder(title, NoPointsMessage), nil
	}

	categories := c.Categories()
	series := make([]gochart.Series, 0, len(categories))
	for i, cat := range categories {
		var xs, ys []float64
		for _, p := range c.Points {
			if p.BoosterCategory == cat {
				xs = append(xs, p.PayloadMass)
				ys = append(ys, float64(p.Outcome))
			}
		}
		// go-chart needs two values to draw a series.
		if len(xs) == 1 {
			xs = append(xs, xs[0])
			ys = append(ys, ys[0])
		}
		color := gochart.GetDefaultColor(i)
		series = append(series, gochart.ContinuousSeries{
			Name: html.EscapeString(categoryName(cat)),
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    dotWidth,
				DotColor:    color,
				StrokeColor: color,
			},
			XValues: xs,
			YValues: ys,
		})
	}

	xmin, xmax := xRange(c)
	ch := gochart.Chart{
		Title:  html.EscapeString(title),
		Width:  r.width,
		Height: r.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:  "Payload Mass (kg)",
			Range: &gochart.ContinuousRange{Min: xmin, Max: xmax},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.FormatFloat(f, 'f', 0, 64)
				}
				return ""
			},
		},
		YAxis: gochart.YAxis{
			Name:  "class",
			Range: &gochart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []gochart.Tick{
				{Value: 0, Label: "0"},
				{Value: 1, Label: "1"},
			},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(gochart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render correlation chart: %w", err)
	}
	return buf.Bytes(), nil
}

// placeholder draws a framed message in place of a chart.
func (r *SVGRenderer) placeholder(title, message string) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(r.width, r.height)
	canvas.Title(title)
	canvas.Rect(0, 0, r.width, r.height, "fill:"+drawing.ColorWhite.String()+";stroke:#cccccc")
	canvas.Text(r.width/2, 30, title, "text-anchor:middle;font-family:sans-serif;font-size:16px")
	canvas.Text(r.width/2, r.height/2, message, "text-anchor:middle;font-family:sans-serif;font-size:14px;fill:#777777")
	canvas.End()
	return buf.Bytes()
}

func correlationTitle(site domain.Site) string {
	if site.IsAll() {
		return "Correlation between Payload and Success for all Sites"
	}
	return fmt.Sprintf("Correlation between Payload and Success for site %s", site)
}

func categoryName(cat string) string {
	if cat == "" {
		return "unknown"
	}
	return cat
}

// xRange returns the visible x axis bounds. The requested range is kept
// unless it reaches further than one point spread beyond the points, and
// is widened when it collapses to a single value.
func xRange(c domain.CorrelationChart) (float64, float64) {
	pmin, pmax := math.Inf(1), math.Inf(-1)
	for _, p := range c.Points {
		pmin = math.Min(pmin, p.PayloadMass)
		pmax = math.Max(pmax, p.PayloadMass)
	}
	pad := math.Max(pmax-pmin, math.Max(math.Abs(pmin), math.Abs(pmax)))
	pad = math.Max(pad, 1)

	low, high := c.Range.Low, c.Range.High
	if math.IsNaN(low) || low < pmin-pad {
		low = pmin - pad
	}
	if math.IsNaN(high) || high > pmax+pad {
		high = pmax + pad
	}
	if high <= low {
		low, high = low-1, high+1
	}
	return low, high
}

var _ ports.ChartRenderer = (*SVGRenderer)(nil)
