package cliconfig

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"LAUNCHDASH_DATASET":          "/env/launches.csv",
				"LAUNCHDASH_LISTEN_ADDR":      "0.0.0.0:8050",
				"LAUNCHDASH_TITLE":            "Env title",
				"LAUNCHDASH_SITES":            "CCAFS LC-40,KSC LC-39A",
				"LAUNCHDASH_PAYLOAD_STEP":     "250.5",
				"LAUNCHDASH_CHART_WIDTH":      "1024",
				"LAUNCHDASH_CHART_HEIGHT":     "768",
				"LAUNCHDASH_LOG_LEVEL":        "debug",
				"LAUNCHDASH_READ_TIMEOUT":     "2s",
				"LAUNCHDASH_SHUTDOWN_TIMEOUT": "10m",
				"LAUNCHDASH_WATCH_CONFIG":     "1",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				DatasetPath:     "/env/launches.csv",
				ListenAddr:      "0.0.0.0:8050",
				Title:           "Env title",
				Sites:           []string{"CCAFS LC-40", "KSC LC-39A"},
				PayloadStep:     250.5,
				ChartWidth:      1024,
				ChartHeight:     768,
				LogLevel:        "debug",
				ReadTimeout:     2 * time.Second,
				ShutdownTimeout: 10 * time.Minute,
				WatchConfig:     true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"LAUNCHDASH_DATASET":   "/env/launches.csv",
				"LAUNCHDASH_LOG_LEVEL": "warn",
			},
			changed: map[string]bool{"dataset": true},
			initial: Config{DatasetPath: "/cli/launches.csv"},
			expected: Config{
				DatasetPath: "/cli/launches.csv",
				LogLevel:    "warn",
			},
		},
		{
			name:     "handles bool 'false' as false",
			envVars:  map[string]string{"LAUNCHDASH_WATCH_CONFIG": "false"},
			changed:  map[string]bool{},
			initial:  Config{WatchConfig: true},
			expected: Config{WatchConfig: false},
		},
		{
			name:     "non-positive numbers are ignored",
			envVars:  map[string]string{"LAUNCHDASH_CHART_WIDTH": "0", "LAUNCHDASH_PAYLOAD_STEP": "-5"},
			changed:  map[string]bool{},
			initial:  Config{ChartWidth: 720, PayloadStep: 1000},
			expected: Config{ChartWidth: 720, PayloadStep: 1000},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"LAUNCHDASH_READ_TIMEOUT": "not-a-duration"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{"LAUNCHDASH_CHART_HEIGHT": "tall"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid float",
			envVars: map[string]string{"LAUNCHDASH_PAYLOAD_STEP": "big"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Integration test: precedence order (CLI > Env > File)
func TestConfigPrecedence(t *testing.T) {
	fileConf := FileConfig{
		Dataset:  "/file/launches.csv",
		Title:    "File title",
		LogLevel: "error",
	}

	t.Setenv("LAUNCHDASH_DATASET", "/env/launches.csv")
	t.Setenv("LAUNCHDASH_TITLE", "Env title")

	changed := map[string]bool{
		"dataset": true,
	}

	cfg := DefaultConfig()
	cfg.DatasetPath = "/cli/launches.csv"

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.DatasetPath != "/cli/launches.csv" {
		t.Errorf("DatasetPath = %v, want /cli/launches.csv (CLI should win)", cfg.DatasetPath)
	}
	if cfg.Title != "Env title" {
		t.Errorf("Title = %v, want Env title (env should override file)", cfg.Title)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %v, want error (file should set)", cfg.LogLevel)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %v, want default", cfg.ListenAddr)
	}
}
