package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations to make the file
// formats friendly. The same keys are used for TOML and YAML.
type FileConfig struct {
	Dataset         string   `toml:"dataset" yaml:"dataset"`
	ListenAddr      string   `toml:"listen_addr" yaml:"listen_addr"`
	Title           string   `toml:"title" yaml:"title"`
	Sites           []string `toml:"sites" yaml:"sites"`
	PayloadStep     float64  `toml:"payload_step" yaml:"payload_step"`
	ChartWidth      int      `toml:"chart_width" yaml:"chart_width"`
	ChartHeight     int      `toml:"chart_height" yaml:"chart_height"`
	LogLevel        string   `toml:"log_level" yaml:"log_level"`
	ReadTimeout     string   `toml:"read_timeout" yaml:"read_timeout"`
	ShutdownTimeout string   `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	WatchConfig     *bool    `toml:"watch_config" yaml:"watch_config"`
}

// LoadFileConfig reads and parses a config file. Files ending in .yaml or
// .yml are parsed as YAML, anything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	default:
		err = toml.Unmarshal(b, &fc)
	}
	if err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.launchdash/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".launchdash", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("dataset", fc.Dataset, &cfg.DatasetPath)
	s.setString("listen", fc.ListenAddr, &cfg.ListenAddr)
	s.setString("title", fc.Title, &cfg.Title)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setStrings("site", fc.Sites, &cfg.Sites)

	s.setFloat("payload-step", fc.PayloadStep, &cfg.PayloadStep)
	s.setInt("chart-width", fc.ChartWidth, &cfg.ChartWidth)
	s.setInt("chart-height", fc.ChartHeight, &cfg.ChartHeight)

	if err := s.setDuration("read-timeout", fc.ReadTimeout, &cfg.ReadTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBool("watch-config", fc.WatchConfig, &cfg.WatchConfig)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
