package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the operational logger for a command run. Results go to
// stdout; logs stay on stderr so piped output remains parseable.
func newLogger(out io.Writer, noColor bool) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}
	return zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}
