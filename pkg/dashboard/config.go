package dashboard

import (
	"fmt"
	"time"

	"github.com/bft-labs/launchdash/internal/adapters/chart"
	"github.com/bft-labs/launchdash/internal/domain"
)

// Defaults applied by Config.SetDefaults.
const (
	DefaultListenAddr      = "127.0.0.1:8050"
	DefaultTitle           = "SpaceX Launch Records Dashboard"
	DefaultPayloadStep     = 1000
	DefaultReadTimeout     = 10 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Config configures a Dashboard.
type Config struct {
	// DatasetPath is the launch records CSV file.
	// Not required when a loader is supplied with WithDatasetLoader.
	DatasetPath string

	// ListenAddr is the TCP address to serve on. Port 0 picks a free port.
	ListenAddr string

	// Title is the page heading.
	Title string

	// Sites is the site selector enumeration. Empty means the dataset's
	// sites in order of first appearance.
	Sites []string

	// PayloadStep is the granularity of the payload range selector in kg.
	PayloadStep float64

	// ChartWidth and ChartHeight are the chart canvas size in pixels.
	ChartWidth  int
	ChartHeight int

	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration

	// ConfigPath is passed to plugins that react to configuration changes.
	ConfigPath string
}

// SetDefaults fills zero fields with their default values.
func (c *Config) SetDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.PayloadStep == 0 {
		c.PayloadStep = DefaultPayloadStep
	}
	if c.ChartWidth == 0 {
		c.ChartWidth = chart.DefaultWidth
	}
	if c.ChartHeight == 0 {
		c.ChartHeight = chart.DefaultHeight
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.PayloadStep < 0 {
		return fmt.Errorf("%w: payload step must be positive", domain.ErrInvalidConfig)
	}
	if c.ChartWidth < 0 || c.ChartHeight < 0 {
		return fmt.Errorf("%w: chart size must be positive", domain.ErrInvalidConfig)
	}
	if c.ReadTimeout < 0 || c.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: timeouts must be positive", domain.ErrInvalidConfig)
	}
	for _, s := range c.Sites {
		if domain.Site(s).IsAll() {
			return fmt.Errorf("%w: site name %q is reserved", domain.ErrInvalidConfig, s)
		}
	}
	return nil
}

func (c Config) siteList() []domain.Site {
	out := make([]domain.Site, 0, len(c.Sites))
	for _, s := range c.Sites {
		out = append(out, domain.Site(s))
	}
	return out
}
