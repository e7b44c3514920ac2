package domain

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// Dataset is the immutable in-memory table of launch records.
// It is built once at startup and shared read-only by every event.
type Dataset struct {
	records []LaunchRecord
	sites   []Site
	minMass float64
	maxMass float64
}

// NewDataset validates records and returns a Dataset holding a private copy of them.
// Every record must have a non-empty site, a non-negative payload mass and a
// 0/1 outcome.
func NewDataset(records []LaunchRecord) (*Dataset, error) {
	cp := make([]LaunchRecord, len(records))
	copy(cp, records)

	seen := make(map[Site]bool)
	var sites []Site
	masses := make([]float64, 0, len(cp))
	for i, r := range cp {
		if r.Site == "" {
			return nil, fmt.Errorf("%w: record %d: empty launch site", ErrInvalidDataset, i)
		}
		if r.Site == AllSites {
			return nil, fmt.Errorf("%w: record %d: site %q is reserved", ErrInvalidDataset, i, r.Site)
		}
		if r.PayloadMass < 0 || math.IsNaN(r.PayloadMass) {
			return nil, fmt.Errorf("%w: record %d: invalid payload mass %v", ErrInvalidDataset, i, r.PayloadMass)
		}
		if !r.Outcome.Valid() {
			return nil, fmt.Errorf("%w: record %d: invalid outcome %d", ErrInvalidDataset, i, r.Outcome)
		}
		if !seen[r.Site] {
			seen[r.Site] = true
			sites = append(sites, r.Site)
		}
		masses = append(masses, r.PayloadMass)
	}

	ds := &Dataset{records: cp, sites: sites}
	if len(masses) > 0 {
		ds.minMass, ds.maxMass = stats.Bounds(masses)
	}
	return ds, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of the records in load order.
func (d *Dataset) Records() []LaunchRecord {
	cp := make([]LaunchRecord, len(d.records))
	copy(cp, d.records)
	return cp
}

// Each calls fn for every record in load order without copying the table.
// Iteration stops early if fn returns false.
func (d *Dataset) Each(fn func(LaunchRecord) bool) {
	for _, r := range d.records {
		if !fn(r) {
			return
		}
	}
}

// Sites returns the distinct sites in order of first appearance.
func (d *Dataset) Sites() []Site {
	return append([]Site(nil), d.sites...)
}

// SortedSites returns the distinct sites in lexicographic order.
func (d *Dataset) SortedSites() []Site {
	s := d.Sites()
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return s
}

// PayloadBounds returns the minimum and maximum payload mass.
// Both are zero for an empty dataset.
func (d *Dataset) PayloadBounds() PayloadRange {
	return PayloadRange{Low: d.minMass, High: d.maxMass}
}
