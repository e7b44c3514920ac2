package domain

import "strconv"

// Outcome is the binary landing outcome of a launch.
type Outcome int

const (
	OutcomeFailure Outcome = 0
	OutcomeSuccess Outcome = 1
)

// Valid reports whether o is one of the two known outcomes.
func (o Outcome) Valid() bool {
	return o == OutcomeFailure || o == OutcomeSuccess
}

// String returns "0" or "1", the label used when grouping by outcome.
func (o Outcome) String() string {
	return strconv.Itoa(int(o))
}

// LaunchRecord is a single row of the dataset.
type LaunchRecord struct {
	// Site is the launch site identifier (e.g. "CCAFS LC-40").
	Site Site

	// PayloadMass is the payload mass in kilograms. Never negative.
	PayloadMass float64

	// BoosterCategory is the booster version category, used only for coloring.
	BoosterCategory string

	// Outcome is 1 for a successful landing, 0 otherwise.
	Outcome Outcome
}
