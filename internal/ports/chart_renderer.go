package ports

import "github.com/bft-labs/launchdash/internal/domain"

// ChartRenderer renders chart input data into an embeddable image.
// Empty charts are valid input and must render without error.
type ChartRenderer interface {
	// RenderProportion renders a pie-style chart.
	RenderProportion(chart domain.ProportionChart) ([]byte, error)

	// RenderCorrelation renders a scatter chart of payload mass against outcome.
	RenderCorrelation(chart domain.CorrelationChart) ([]byte, error)

	// ContentType is the MIME type of the rendered bytes.
	ContentType() string
}
