package configwatcher

import "github.com/bft-labs/launchdash/pkg/dashboard"

// WithConfigWatcher returns a dashboard Option that enables config file
// watching. The dashboard's Config.ConfigPath names the file to watch.
//
// Usage:
//
//	d, err := dashboard.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) dashboard.Option {
	plugin := New(cfg)
	return dashboard.WithPlugin(plugin)
}

// WithDefaultConfigWatcher returns a dashboard Option that enables config
// watching with default settings (debounce 100ms, zerolog global level).
//
// Usage:
//
//	d, err := dashboard.New(cfg, configwatcher.WithDefaultConfigWatcher())
func WithDefaultConfigWatcher() dashboard.Option {
	return WithConfigWatcher(DefaultConfig())
}
