package ports

import (
	"context"

	"github.com/bft-labs/launchdash/internal/domain"
)

// DatasetLoader produces the launch dataset.
// It is called exactly once, before the dashboard starts serving.
type DatasetLoader interface {
	// Load reads and validates every record.
	// Returns an error wrapping domain.ErrInvalidDataset for malformed input.
	Load(ctx context.Context) (*domain.Dataset, error)
}
