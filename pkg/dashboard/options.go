package dashboard

// Option configures optional behavior of a Dashboard.
type Option func(*options)

type options struct {
	logger       Logger
	eventHandler EventHandler
	plugins      []Plugin
	loader       DatasetLoader
	renderer     ChartRenderer
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for dashboard events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the dashboard starts.
// Plugins are initialized in registration order and shut down in reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithDatasetLoader replaces the CSV file loader.
func WithDatasetLoader(loader DatasetLoader) Option {
	return func(o *options) {
		o.loader = loader
	}
}

// WithChartRenderer replaces the SVG chart renderer.
func WithChartRenderer(renderer ChartRenderer) Option {
	return func(o *options) {
		o.renderer = renderer
	}
}
