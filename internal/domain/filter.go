package domain

import "fmt"

// Site identifies a launch site.
type Site string

// AllSites is the sentinel site meaning "no site restriction".
const AllSites Site = "ALL"

// IsAll reports whether s is the all-sites sentinel.
func (s Site) IsAll() bool {
	return s == AllSites
}

// PayloadRange is an inclusive payload-mass interval in kilograms.
// A range with Low > High is legal and matches nothing.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether Low <= mass <= High.
func (r PayloadRange) Contains(mass float64) bool {
	return r.Low <= mass && mass <= r.High
}

// Empty reports whether no value can fall in the range.
func (r PayloadRange) Empty() bool {
	return r.Low > r.High
}

func (r PayloadRange) String() string {
	return fmt.Sprintf("[%g, %g]", r.Low, r.High)
}

// FilterState is the user's current selection.
// It is a value type: handlers receive a snapshot and return a new one.
type FilterState struct {
	Site    Site         `json:"site"`
	Payload PayloadRange `json:"payload"`
}

// DefaultFilterState returns the initial selection for ds: all sites and the
// full payload range of the dataset.
func DefaultFilterState(ds *Dataset) FilterState {
	return FilterState{
		Site:    AllSites,
		Payload: ds.PayloadBounds(),
	}
}
