// Package summary aggregates launch outcomes and payloads per site and
// renders them as a table.
package summary

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bft-labs/launchdash/internal/domain"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal table
	Markdown             // GitHub-flavoured Markdown table
)

// Row holds the aggregates of one site, or of the whole dataset.
// Payload statistics are NaN when there are no launches.
type Row struct {
	Site        domain.Site
	Launches    int
	Successes   int
	Failures    int
	SuccessRate float64
	MinPayload  float64
	MeanPayload float64
	MaxPayload  float64
}

// Summary is the per-site breakdown plus the dataset total.
type Summary struct {
	Sites []Row
	Total Row
}

// Compute aggregates ds for each of sites, in order. With no sites the
// dataset's own sites are used.
func Compute(ds *domain.Dataset, sites []domain.Site) Summary {
	if len(sites) == 0 {
		sites = ds.Sites()
	}

	masses := make(map[domain.Site][]float64, len(sites))
	successes := make(map[domain.Site]int, len(sites))
	var all []float64
	var allSuccesses int
	ds.Each(func(r domain.LaunchRecord) bool {
		masses[r.Site] = append(masses[r.Site], r.PayloadMass)
		all = append(all, r.PayloadMass)
		if r.Outcome == domain.OutcomeSuccess {
			successes[r.Site]++
			allSuccesses++
		}
		return true
	})

	out := Summary{Sites: make([]Row, 0, len(sites))}
	for _, s := range sites {
		out.Sites = append(out.Sites, row(s, masses[s], successes[s]))
	}
	out.Total = row(domain.AllSites, all, allSuccesses)
	return out
}

func row(site domain.Site, masses []float64, successes int) Row {
	r := Row{
		Site:        site,
		Launches:    len(masses),
		Successes:   successes,
		Failures:    len(masses) - successes,
		SuccessRate: math.NaN(),
		MinPayload:  math.NaN(),
		MeanPayload: math.NaN(),
		MaxPayload:  math.NaN(),
	}
	if len(masses) == 0 {
		return r
	}
	r.SuccessRate = float64(successes) / float64(len(masses))
	r.MinPayload, r.MaxPayload = stats.Bounds(masses)
	r.MeanPayload = stats.Mean(masses)
	return r
}

// Render formats s as a table in the given mode.
func Render(s Summary, m Mode) string {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}

	w.AppendHeader(table.Row{"Site", "Launches", "Successes", "Failures", "Success rate", "Min payload (kg)", "Mean payload (kg)", "Max payload (kg)"})
	for _, r := range s.Sites {
		w.AppendRow(cells(string(r.Site), r))
	}
	w.AppendFooter(cells("Total", s.Total))

	cfgs := make([]table.ColumnConfig, 0, 7)
	for n := 2; n <= 8; n++ {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	w.SetColumnConfigs(cfgs)

	if m == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

func cells(label string, r Row) table.Row {
	return table.Row{
		label,
		r.Launches,
		r.Successes,
		r.Failures,
		percent(r.SuccessRate),
		kg(r.MinPayload),
		kg(r.MeanPayload),
		kg(r.MaxPayload),
	}
}

func percent(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

func kg(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.0f", v)
}
