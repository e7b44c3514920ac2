package cliconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LAUNCHDASH_"

// EnvConfig holds the raw environment values. Numbers and durations stay
// strings so parse errors can name the flag they belong to.
type EnvConfig struct {
	Dataset         string   `env:"DATASET"`
	ListenAddr      string   `env:"LISTEN_ADDR"`
	Title           string   `env:"TITLE"`
	Sites           []string `env:"SITES" envSeparator:","`
	PayloadStep     string   `env:"PAYLOAD_STEP"`
	ChartWidth      string   `env:"CHART_WIDTH"`
	ChartHeight     string   `env:"CHART_HEIGHT"`
	LogLevel        string   `env:"LOG_LEVEL"`
	ReadTimeout     string   `env:"READ_TIMEOUT"`
	ShutdownTimeout string   `env:"SHUTDOWN_TIMEOUT"`
	WatchConfig     string   `env:"WATCH_CONFIG"`
}

// LoadEnvConfig reads LAUNCHDASH_* variables from the process environment.
func LoadEnvConfig() (EnvConfig, error) {
	var ec EnvConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: EnvPrefix}); err != nil {
		return ec, fmt.Errorf("parse env: %w", err)
	}
	return ec, nil
}

// ApplyEnvConfig applies configuration from the environment to cfg.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	ec, err := LoadEnvConfig()
	if err != nil {
		return err
	}

	s := newConfigSetter(changed)

	s.setString("dataset", ec.Dataset, &cfg.DatasetPath)
	s.setString("listen", ec.ListenAddr, &cfg.ListenAddr)
	s.setString("title", ec.Title, &cfg.Title)
	s.setString("log-level", ec.LogLevel, &cfg.LogLevel)
	s.setStrings("site", ec.Sites, &cfg.Sites)

	if err := s.setFloatFromString("payload-step", ec.PayloadStep, &cfg.PayloadStep); err != nil {
		return err
	}
	if err := s.setIntFromString("chart-width", ec.ChartWidth, &cfg.ChartWidth); err != nil {
		return err
	}
	if err := s.setIntFromString("chart-height", ec.ChartHeight, &cfg.ChartHeight); err != nil {
		return err
	}
	if err := s.setDuration("read-timeout", ec.ReadTimeout, &cfg.ReadTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", ec.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBoolFromString("watch-config", ec.WatchConfig, &cfg.WatchConfig)

	return nil
}
