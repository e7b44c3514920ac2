// Package launchdash serves an interactive dashboard over SpaceX launch
// records.
//
// Example usage:
//
//	cfg := launchdash.DefaultConfig()
//	cfg.DatasetPath = "spacex_launch_dash.csv"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	logger, _ := cfg.Logger(os.Stderr)
//	if err := launchdash.Run(ctx, cfg, logger); err != nil {
//	    log.Fatal(err)
//	}
//
// For finer control embed [github.com/bft-labs/launchdash/pkg/dashboard].
package launchdash

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bft-labs/launchdash/internal/cliconfig"
	"github.com/bft-labs/launchdash/pkg/dashboard"
	"github.com/bft-labs/launchdash/pkg/log"
	"github.com/bft-labs/launchdash/plugins/configwatcher"
)

// Config holds the configuration of the dashboard server.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// DefaultConfig returns a Config with sensible default values.
// At minimum, you must set DatasetPath before calling Run.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// DashboardConfig converts a validated Config to the embeddable form.
func DashboardConfig(cfg Config) dashboard.Config {
	return dashboard.Config{
		DatasetPath:     cfg.DatasetPath,
		ListenAddr:      cfg.ListenAddr,
		Title:           cfg.Title,
		Sites:           cfg.Sites,
		PayloadStep:     cfg.PayloadStep,
		ChartWidth:      cfg.ChartWidth,
		ChartHeight:     cfg.ChartHeight,
		ReadTimeout:     cfg.ReadTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		ConfigPath:      cfg.ConfigPath,
	}
}

// Run serves the dashboard until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg Config, logger zerolog.Logger) error {
	opts := []dashboard.Option{
		dashboard.WithLogger(log.NewZerologAdapterWithLogger(logger)),
	}
	if cfg.WatchConfig && cfg.ConfigPath != "" {
		opts = append(opts, configwatcher.WithDefaultConfigWatcher())
	}

	d, err := dashboard.New(DashboardConfig(cfg), opts...)
	if err != nil {
		return fmt.Errorf("create dashboard: %w", err)
	}
	if err := d.Start(ctx); err != nil {
		return fmt.Errorf("start dashboard: %w", err)
	}

	select {
	case <-ctx.Done():
		logger.Info().Msg("stopping")
	case <-d.Done():
	}

	if d.Status() == dashboard.StateCrashed {
		return errors.New("dashboard crashed")
	}
	if err := d.Stop(); err != nil {
		return fmt.Errorf("stop dashboard: %w", err)
	}
	return nil
}
