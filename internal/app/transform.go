package app

import (
	"sort"

	"github.com/bft-labs/launchdash/internal/domain"
)

// ProportionChart computes pie chart input for the selected site.
//
// For the all-sites sentinel every site gets one slice whose value is the
// number of successful launches there. For a single site the records are
// split by outcome and each outcome present gets one slice holding its
// record count; outcomes with no records are omitted. An unknown site yields
// a chart with no slices.
func ProportionChart(ds *domain.Dataset, site domain.Site) domain.ProportionChart {
	if site.IsAll() {
		return domain.ProportionChart{
			Title:  domain.AllSitesTitle,
			Slices: successesBySite(ds),
		}
	}
	return domain.ProportionChart{
		Title:  string(site),
		Slices: outcomeCounts(ds, site),
	}
}

func successesBySite(ds *domain.Dataset) []domain.Slice {
	sums := make(map[domain.Site]int)
	ds.Each(func(r domain.LaunchRecord) bool {
		sums[r.Site] += int(r.Outcome)
		return true
	})

	slices := make([]domain.Slice, 0, len(sums))
	for _, site := range ds.SortedSites() {
		slices = append(slices, domain.Slice{Label: string(site), Value: sums[site]})
	}
	return slices
}

func outcomeCounts(ds *domain.Dataset, site domain.Site) []domain.Slice {
	counts := make(map[domain.Outcome]int)
	ds.Each(func(r domain.LaunchRecord) bool {
		if r.Site == site {
			counts[r.Outcome]++
		}
		return true
	})

	outcomes := make([]domain.Outcome, 0, len(counts))
	for o := range counts {
		outcomes = append(outcomes, o)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i] < outcomes[j] })

	slices := make([]domain.Slice, 0, len(outcomes))
	for _, o := range outcomes {
		slices = append(slices, domain.Slice{Label: o.String(), Value: counts[o]})
	}
	return slices
}

// CorrelationChart computes scatter chart input: one point per record at the
// selected site (or any site for the sentinel) whose payload mass lies in the
// inclusive range. Points keep dataset order and are neither sorted nor
// deduplicated.
func CorrelationChart(ds *domain.Dataset, site domain.Site, payload domain.PayloadRange) domain.CorrelationChart {
	chart := domain.CorrelationChart{
		Site:   site,
		Range:  payload,
		Points: []domain.Point{},
	}
	if payload.Empty() {
		return chart
	}

	ds.Each(func(r domain.LaunchRecord) bool {
		if !site.IsAll() && r.Site != site {
			return true
		}
		if !payload.Contains(r.PayloadMass) {
			return true
		}
		chart.Points = append(chart.Points, domain.Point{
			PayloadMass:     r.PayloadMass,
			Outcome:         r.Outcome,
			BoosterCategory: r.BoosterCategory,
		})
		return true
	})
	return chart
}
