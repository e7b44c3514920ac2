package launchdash

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/bft-labs/launchdash/pkg/dashboard"
)

func TestDashboardConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DatasetPath = "launches.csv"
	cfg.Sites = []string{"CCAFS LC-40", "KSC LC-39A"}
	cfg.ConfigPath = "/etc/launchdash.toml"

	got := DashboardConfig(cfg)
	want := dashboard.Config{
		DatasetPath:     "launches.csv",
		ListenAddr:      cfg.ListenAddr,
		Title:           cfg.Title,
		Sites:           []string{"CCAFS LC-40", "KSC LC-39A"},
		PayloadStep:     cfg.PayloadStep,
		ChartWidth:      cfg.ChartWidth,
		ChartHeight:     cfg.ChartHeight,
		ReadTimeout:     cfg.ReadTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		ConfigPath:      "/etc/launchdash.toml",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DashboardConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launches.csv")
	data := "Launch Site,Payload Mass (kg),Booster Version Category,class\n" +
		"CCAFS LC-40,500,v1.0,0\n" +
		"KSC LC-39A,2500,FT,1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	cfg := DefaultConfig()
	cfg.DatasetPath = path
	cfg.ListenAddr = "127.0.0.1:0"
	cfg.WatchConfig = false

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- Run(ctx, cfg, zerolog.Nop()) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
