package dashboard

import (
	"github.com/bft-labs/launchdash/internal/domain"
	"github.com/bft-labs/launchdash/internal/ports"
	"github.com/bft-labs/launchdash/pkg/log"
)

// Re-exported domain types, so loaders, renderers and event handlers can be
// written outside this module.
type (
	Site             = domain.Site
	Outcome          = domain.Outcome
	LaunchRecord     = domain.LaunchRecord
	Dataset          = domain.Dataset
	PayloadRange     = domain.PayloadRange
	FilterState      = domain.FilterState
	Slice            = domain.Slice
	Point            = domain.Point
	ProportionChart  = domain.ProportionChart
	CorrelationChart = domain.CorrelationChart

	// DatasetLoader produces the dataset once at startup.
	DatasetLoader = ports.DatasetLoader

	// ChartRenderer turns chart data into an image.
	ChartRenderer = ports.ChartRenderer

	// Logger is the interface for structured logging.
	Logger = log.Logger

	// LogField represents a structured log field.
	LogField = log.Field
)

// AllSites is the site value meaning "no site restriction".
const AllSites = domain.AllSites

// Launch outcomes.
const (
	OutcomeFailure = domain.OutcomeFailure
	OutcomeSuccess = domain.OutcomeSuccess
)

// Errors returned by the dashboard. Check them with errors.Is.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig
	ErrInvalidDataset  = domain.ErrInvalidDataset
)

// NewDataset validates records and builds a dataset from them.
func NewDataset(records []LaunchRecord) (*Dataset, error) {
	return domain.NewDataset(records)
}
