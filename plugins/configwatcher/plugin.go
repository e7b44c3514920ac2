// Package configwatcher provides config file monitoring for the dashboard.
// When enabled, it watches the dashboard's config file and applies log level
// changes without a restart.
package configwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/launchdash/internal/cliconfig"
	"github.com/bft-labs/launchdash/pkg/dashboard"
	"github.com/bft-labs/launchdash/pkg/log"
)

// Plugin implements config watching functionality.
// It reloads the config file after it is written and applies its log level.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	debounceDelay time.Duration
	setLevel      func(level string) error

	// Runtime state
	path      string
	logger    dashboard.Logger
	lastLevel string
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	debounce  *time.Timer
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// SetLevel applies a log level.
	// Default: log.SetLevel, which changes the zerolog global level.
	SetLevel func(level string) error
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
		SetLevel:      log.SetLevel,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	if cfg.SetLevel == nil {
		cfg.SetLevel = log.SetLevel
	}

	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
		setLevel:      cfg.SetLevel,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize starts watching cfg.ConfigPath. Without a config path the
// plugin stays idle.
func (p *Plugin) Initialize(ctx context.Context, cfg dashboard.PluginConfig) error {
	p.mu.Lock()
	p.path = cfg.ConfigPath
	p.logger = cfg.Logger
	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}
	p.mu.Unlock()

	if p.path == "" {
		p.logger.Warn("Config watcher disabled: no config file")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		_ = watcher.Close()
		return err
	}

	if fc, err := cliconfig.LoadFileConfig(p.path); err == nil {
		p.lastLevel = fc.LogLevel
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("Config watcher plugin initialized", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	return nil
}

// Shutdown stops the config watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

// watchLoop watches for config file changes.
func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	name := filepath.Base(p.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("Config watcher: watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.reload()
	})
}

// reload re-reads the config file and applies a changed log level.
// A file that fails to parse leaves the current level in place.
func (p *Plugin) reload() {
	fc, err := cliconfig.LoadFileConfig(p.path)
	if err != nil {
		p.logger.Warn("Config watcher: reload failed", log.Err(err))
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if fc.LogLevel == "" || fc.LogLevel == p.lastLevel {
		return
	}
	if err := p.setLevel(fc.LogLevel); err != nil {
		p.logger.Warn("Config watcher: invalid log level", log.String("level", fc.LogLevel), log.Err(err))
		return
	}
	p.logger.Info("Config watcher: log level changed",
		log.String("from", p.lastLevel),
		log.String("to", fc.LogLevel))
	p.lastLevel = fc.LogLevel
}

// Ensure Plugin implements dashboard.Plugin.
var _ dashboard.Plugin = (*Plugin)(nil)
