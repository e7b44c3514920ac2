package cliconfig

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/bft-labs/launchdash/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %v, want %v", cfg.ListenAddr, DefaultListenAddr)
	}
	if cfg.Title != DefaultTitle {
		t.Errorf("Title = %v, want %v", cfg.Title, DefaultTitle)
	}
	if cfg.PayloadStep != 1000 {
		t.Errorf("PayloadStep = %v, want 1000", cfg.PayloadStep)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if !cfg.WatchConfig {
		t.Error("WatchConfig = false, want true")
	}
	if cfg.DatasetPath != "" {
		t.Errorf("DatasetPath = %q, want empty", cfg.DatasetPath)
	}
}

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.DatasetPath = "/data/spacex_launch_dash.csv"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid defaults with dataset", mutate: func(*Config) {}},
		{name: "missing dataset", mutate: func(c *Config) { c.DatasetPath = "" }, wantErr: true},
		{name: "missing listen address", mutate: func(c *Config) { c.ListenAddr = "" }, wantErr: true},
		{name: "zero payload step", mutate: func(c *Config) { c.PayloadStep = 0 }, wantErr: true},
		{name: "negative chart width", mutate: func(c *Config) { c.ChartWidth = -1 }, wantErr: true},
		{name: "zero chart height", mutate: func(c *Config) { c.ChartHeight = 0 }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "empty log level", mutate: func(c *Config) { c.LogLevel = "" }, wantErr: true},
		{name: "uppercase log level", mutate: func(c *Config) { c.LogLevel = "DEBUG" }},
		{name: "zero read timeout", mutate: func(c *Config) { c.ReadTimeout = 0 }, wantErr: true},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.ShutdownTimeout = 0 }, wantErr: true},
		{name: "reserved site", mutate: func(c *Config) { c.Sites = []string{"KSC LC-39A", "ALL"} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_Validate_NormalizesSites(t *testing.T) {
	cfg := validConfig()
	cfg.Sites = []string{" CCAFS LC-40", "VAFB SLC-4E", "", "CCAFS LC-40 ", "KSC LC-39A"}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	want := []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A"}
	if diff := cmp.Diff(want, cfg.Sites); diff != "" {
		t.Errorf("Sites mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]domain.Site{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A"}, cfg.SiteList()); diff != "" {
		t.Errorf("SiteList mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_Logger(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	cfg := validConfig()
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	logger, err := cfg.Logger(&buf)
	if err != nil {
		t.Fatalf("Logger() error = %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("GlobalLevel = %v, want warn", zerolog.GlobalLevel())
	}

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	if bytes.Contains(buf.Bytes(), []byte("hidden")) || !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Errorf("unexpected output %q", buf.String())
	}

	cfg.LogLevel = "nope"
	if _, err := cfg.Logger(&buf); err == nil {
		t.Error("Logger() expected error for invalid level")
	}
}
