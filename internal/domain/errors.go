package domain

import "errors"

// Domain errors represent error conditions in the launchdash domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running dashboard.
	ErrAlreadyRunning = errors.New("launchdash: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped dashboard.
	ErrNotRunning = errors.New("launchdash: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("launchdash: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("launchdash: invalid configuration")

	// ErrInvalidDataset is returned when the dataset cannot be built from its source.
	ErrInvalidDataset = errors.New("launchdash: invalid dataset")

	// ErrUnknownEvent is returned when a control event has no registered handler.
	ErrUnknownEvent = errors.New("launchdash: unknown event")
)
