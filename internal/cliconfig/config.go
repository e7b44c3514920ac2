package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/launchdash/internal/domain"
	"github.com/bft-labs/launchdash/pkg/log"
)

// Defaults.
const (
	DefaultListenAddr = "127.0.0.1:8050"
	DefaultTitle      = "SpaceX Launch Records Dashboard"
)

// Config holds CLI configuration for launchdash.
type Config struct {
	DatasetPath string
	ListenAddr  string
	Title       string

	// Sites is the site selector enumeration. Empty means the dataset's
	// sites in order of first appearance.
	Sites       []string
	PayloadStep float64

	ChartWidth  int
	ChartHeight int

	LogLevel        string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration

	// ConfigPath is the file the configuration was read from, if any.
	ConfigPath  string
	WatchConfig bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      DefaultListenAddr,
		Title:           DefaultTitle,
		PayloadStep:     1000,
		ChartWidth:      720,
		ChartHeight:     420,
		LogLevel:        "info",
		ReadTimeout:     10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		WatchConfig:     true,
	}
}

// Validate checks the configuration for errors and normalizes the site list.
func (c *Config) Validate() error {
	if c.DatasetPath == "" {
		return fmt.Errorf("%w: dataset is required", domain.ErrInvalidConfig)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: listen address is required", domain.ErrInvalidConfig)
	}
	if c.PayloadStep <= 0 {
		return fmt.Errorf("%w: payload step must be positive", domain.ErrInvalidConfig)
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("%w: chart size must be positive", domain.ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("%w: read timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", domain.ErrInvalidConfig)
	}

	sites, err := normalizeSites(c.Sites)
	if err != nil {
		return err
	}
	c.Sites = sites
	return nil
}

// SiteList returns Sites as domain values.
func (c Config) SiteList() []domain.Site {
	out := make([]domain.Site, 0, len(c.Sites))
	for _, s := range c.Sites {
		out = append(out, domain.Site(s))
	}
	return out
}

// normalizeSites trims names, drops blanks and duplicates, and rejects the
// all-sites sentinel.
func normalizeSites(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		if domain.Site(s).IsAll() {
			return nil, fmt.Errorf("%w: site name %q is reserved", domain.ErrInvalidConfig, s)
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings replaces a list if the new one is non-empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
