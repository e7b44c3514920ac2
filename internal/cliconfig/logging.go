package cliconfig

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/bft-labs/launchdash/pkg/log"
)

// Logger returns a console logger writing to w and sets the global level
// from LogLevel.
func (c Config) Logger(w io.Writer) (zerolog.Logger, error) {
	if err := log.SetLevel(c.LogLevel); err != nil {
		return zerolog.Nop(), err
	}
	return log.NewConsoleLogger(w), nil
}
