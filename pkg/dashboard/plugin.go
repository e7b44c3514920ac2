package dashboard

import "context"

// Plugin extends a Dashboard with optional behavior.
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string

	// Initialize is called from Start before the server accepts connections.
	// ctx is canceled when the dashboard stops. An error aborts Start.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown is called from Stop after the server has drained.
	Shutdown(ctx context.Context) error
}

// PluginConfig is the information handed to plugins on Initialize.
type PluginConfig struct {
	DatasetPath string
	ConfigPath  string
	ListenAddr  string
	Logger      Logger
}

// BasePlugin implements Plugin with no-ops.
type BasePlugin struct{}

func (BasePlugin) Name() string                                   { return "base" }
func (BasePlugin) Initialize(context.Context, PluginConfig) error { return nil }
func (BasePlugin) Shutdown(context.Context) error                 { return nil }
