package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/launchdash/internal/adapters/chart"
	"github.com/bft-labs/launchdash/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/launchdash/internal/adapters/http"
	"github.com/bft-labs/launchdash/internal/app"
	"github.com/bft-labs/launchdash/internal/domain"
	"github.com/bft-labs/launchdash/internal/ports"
	"github.com/bft-labs/launchdash/pkg/log"
)

// Dashboard is an embeddable launch records dashboard.
// Use New() to create an instance, then Start() to begin serving.
type Dashboard struct {
	config    Config
	lifecycle *app.Lifecycle
	loader    ports.DatasetLoader
	renderer  ports.ChartRenderer
	logger    ports.Logger
	emitter   *eventEmitterWrapper
	plugins   []Plugin

	mu     sync.RWMutex
	shell  *app.Shell
	server *httpAdapter.Server
	cancel context.CancelFunc
	done   chan struct{}
	runErr error
}

// New creates a Dashboard with the given configuration.
// The instance is created in StateStopped; call Start() to begin serving.
func New(cfg Config, opts ...Option) (*Dashboard, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	loader := o.loader
	if loader == nil {
		if cfg.DatasetPath == "" {
			return nil, fmt.Errorf("%w: dataset path is required", domain.ErrInvalidConfig)
		}
		loader = fs.NewCSVLoader(cfg.DatasetPath, logger)
	}

	renderer := o.renderer
	if renderer == nil {
		renderer = chart.NewSVGRenderer(cfg.ChartWidth, cfg.ChartHeight)
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}

	return &Dashboard{
		config:    cfg,
		lifecycle: app.NewLifecycle(logger, emitter),
		loader:    loader,
		renderer:  renderer,
		logger:    logger,
		emitter:   emitter,
		plugins:   o.plugins,
	}, nil
}

// Start loads the dataset, initializes plugins and begins serving in the
// background. It returns once the listen address is bound.
// The provided context bounds the lifetime of the server.
func (d *Dashboard) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := d.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.lifecycle.SetCancel(cancel)

	ds, err := d.loader.Load(runCtx)
	if err != nil {
		return d.abortStart(fmt.Errorf("load dataset: %w", err), "dataset load failed")
	}
	d.shell = app.NewShell(ds, d.config.siteList(), d.logger, d.emitter)

	pluginCfg := PluginConfig{
		DatasetPath: d.config.DatasetPath,
		ConfigPath:  d.config.ConfigPath,
		ListenAddr:  d.config.ListenAddr,
		Logger:      d.logger,
	}
	for i, p := range d.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			d.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			d.shutdownPlugins(d.plugins[:i])
			return d.abortStart(err, "plugin init failed: "+p.Name())
		}
		d.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	server := httpAdapter.NewServer(httpAdapter.ServerConfig{
		Addr:        d.config.ListenAddr,
		Title:       d.config.Title,
		PayloadStep: d.config.PayloadStep,
		ReadTimeout: d.config.ReadTimeout,
	}, d.shell, d.renderer, d.logger)
	if err := server.Listen(); err != nil {
		d.shutdownPlugins(d.plugins)
		return d.abortStart(err, "listen failed")
	}
	d.server = server

	done := make(chan struct{})
	d.done = done
	d.runErr = nil

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(server.Serve)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), d.config.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := d.lifecycle.TransitionTo(app.StateRunning, "listening on "+server.Addr()); err != nil {
		cancel()
		return err
	}

	go func() {
		defer close(done)
		err := g.Wait()

		d.mu.Lock()
		d.runErr = err
		d.mu.Unlock()

		// Only an exit that nobody asked for is a crash.
		if err != nil && runCtx.Err() == nil {
			d.logger.Error("server error", ports.Err(err))
			_ = d.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	}()

	return nil
}

// abortStart must be called with d.mu held.
func (d *Dashboard) abortStart(err error, reason string) error {
	d.cancel()
	_ = d.lifecycle.TransitionTo(app.StateCrashed, reason)
	return err
}

// Stop shuts the server down, waiting up to ShutdownTimeout for in-flight
// requests, then shuts plugins down in reverse order.
// Returns nil on graceful shutdown, ErrShutdownTimeout if forced.
func (d *Dashboard) Stop() error {
	d.mu.Lock()

	if !d.lifecycle.CanStop() {
		d.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := d.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		d.mu.Unlock()
		return err
	}

	d.cancel()
	done := d.done
	d.mu.Unlock()

	err := d.lifecycle.WaitWithTimeout(done, d.config.ShutdownTimeout)
	if err == nil {
		d.mu.RLock()
		if errors.Is(d.runErr, context.DeadlineExceeded) {
			err = domain.ErrShutdownTimeout
		}
		d.mu.RUnlock()
	}

	d.shutdownPlugins(d.plugins)

	if err != nil {
		_ = d.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = d.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

func (d *Dashboard) shutdownPlugins(plugins []Plugin) {
	ctx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			d.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
		} else {
			d.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
		}
	}
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (d *Dashboard) Status() State {
	return convertState(d.lifecycle.State())
}

// Addr returns the address the server is bound to, or the configured listen
// address before the first successful Start.
func (d *Dashboard) Addr() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.server != nil {
		return d.server.Addr()
	}
	return d.config.ListenAddr
}

// Done returns a channel closed when the server started by the last Start
// has exited. It is closed immediately if the dashboard was never started.
func (d *Dashboard) Done() <-chan struct{} {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.done == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return d.done
}

// Filter returns the current filter state, or the zero value before Start.
func (d *Dashboard) Filter() FilterState {
	d.mu.RLock()
	shell := d.shell
	d.mu.RUnlock()
	if shell == nil {
		return FilterState{}
	}
	return shell.Snapshot()
}
