package fs

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bft-labs/launchdash/internal/domain"
	"github.com/bft-labs/launchdash/internal/ports"
)

// Column headers read from the launch CSV. Other columns are ignored.
const (
	ColumnSite            = "Launch Site"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnBoosterCategory = "Booster Version Category"
	ColumnOutcome         = "class"
)

// CSVLoader implements ports.DatasetLoader for a CSV file on disk.
type CSVLoader struct {
	path   string
	logger ports.Logger
}

// NewCSVLoader creates a loader for the file at path.
func NewCSVLoader(path string, logger ports.Logger) *CSVLoader {
	return &CSVLoader{path: path, logger: logger}
}

// Load reads the whole file and builds the dataset.
func (l *CSVLoader) Load(ctx context.Context) (*domain.Dataset, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}

	bounds := ds.PayloadBounds()
	l.logger.Info("dataset loaded",
		ports.String("path", l.path),
		ports.Int("records", ds.Len()),
		ports.Int("sites", len(ds.Sites())),
		ports.Float64("payload_min", bounds.Low),
		ports.Float64("payload_max", bounds.High),
	)
	return ds, nil
}

// Path returns the file the loader reads.
func (l *CSVLoader) Path() string {
	return l.path
}

// ReadCSV parses launch records from r. The first row must be a header
// containing the four required columns; line numbers in errors are 1-based.
func ReadCSV(ctx context.Context, r io.Reader) (*domain.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", domain.ErrInvalidDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrInvalidDataset, err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var records []domain.LaunchRecord
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidDataset, line, err)
		}
		rec, err := parseRecord(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidDataset, line, err)
		}
		records = append(records, rec)
	}

	return domain.NewDataset(records)
}

type columnIndex struct {
	site, payload, booster, outcome int
}

func indexColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		// Spreadsheet exports sometimes prefix the first header with a BOM.
		pos[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
		}
		return i
	}
	idx := columnIndex{
		site:    lookup(ColumnSite),
		payload: lookup(ColumnPayloadMass),
		booster: lookup(ColumnBoosterCategory),
		outcome: lookup(ColumnOutcome),
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w: missing columns %q", domain.ErrInvalidDataset, missing)
	}
	return idx, nil
}

func parseRecord(row []string, cols columnIndex) (domain.LaunchRecord, error) {
	field := func(i int) string { return strings.TrimSpace(row[i]) }

	site := field(cols.site)
	if site == "" {
		return domain.LaunchRecord{}, fmt.Errorf("empty %q", ColumnSite)
	}

	raw := field(cols.payload)
	if raw == "" {
		return domain.LaunchRecord{}, fmt.Errorf("empty %q", ColumnPayloadMass)
	}
	mass, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.LaunchRecord{}, fmt.Errorf("parse %q: %v", ColumnPayloadMass, err)
	}

	outcome, err := parseOutcome(field(cols.outcome))
	if err != nil {
		return domain.LaunchRecord{}, err
	}

	return domain.LaunchRecord{
		Site:            domain.Site(site),
		PayloadMass:     mass,
		BoosterCategory: field(cols.booster),
		Outcome:         outcome,
	}, nil
}

func parseOutcome(raw string) (domain.Outcome, error) {
	// Some exports write the flag as a float ("1.0").
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %v", ColumnOutcome, err)
	}
	o := domain.Outcome(v)
	if float64(o) != v || !o.Valid() {
		return 0, fmt.Errorf("%q must be 0 or 1, got %s", ColumnOutcome, raw)
	}
	return o, nil
}

var _ ports.DatasetLoader = (*CSVLoader)(nil)
