package domain

// AllSitesTitle is the proportion chart title used when no site is selected.
const AllSitesTitle = "Total Successful Launches by Site"

// Slice is one (label, value) pair of a proportion chart.
type Slice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ProportionChart is the input of a pie-style chart.
type ProportionChart struct {
	Title  string  `json:"title"`
	Slices []Slice `json:"slices"`
}

// Empty reports whether the chart has no slices.
func (c ProportionChart) Empty() bool {
	return len(c.Slices) == 0
}

// Total returns the sum of all slice values.
func (c ProportionChart) Total() int {
	var t int
	for _, s := range c.Slices {
		t += s.Value
	}
	return t
}

// Point is one scatter point of the correlation chart.
type Point struct {
	PayloadMass     float64 `json:"payload_mass"`
	Outcome         Outcome `json:"outcome"`
	BoosterCategory string  `json:"booster_category"`
}

// CorrelationChart is the input of the payload/outcome scatter chart.
type CorrelationChart struct {
	Site   Site         `json:"site"`
	Range  PayloadRange `json:"range"`
	Points []Point      `json:"points"`
}

// Empty reports whether the chart has no points.
func (c CorrelationChart) Empty() bool {
	return len(c.Points) == 0
}

// Categories returns the distinct booster categories in order of first appearance.
func (c CorrelationChart) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.Points {
		if !seen[p.BoosterCategory] {
			seen[p.BoosterCategory] = true
			out = append(out, p.BoosterCategory)
		}
	}
	return out
}
