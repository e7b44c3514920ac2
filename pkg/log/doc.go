// Package log provides the logging abstraction used by launchdash components.
//
// Components depend on the [Logger] interface only. A zerolog-backed
// implementation is provided for the CLI and a no-op logger for tests and for
// embedders that do not want output:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger.Info("dashboard listening", log.String("addr", addr))
//
// The global zerolog level can be changed at runtime with [SetLevel], which
// is what the config watcher plugin uses to hot-reload log_level.
package log
