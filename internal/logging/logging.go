package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Debug controls whether debug logs are printed.
var Debug bool

var base = zerolog.New(os.Stdout).With().Timestamp().Logger()

// New returns the process logger at the given level ("debug", "info", ...).
// Debug forces debug level.
func New(level string) zerolog.Logger {
	return NewWriter(os.Stdout, level)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if Debug {
		lvl = zerolog.DebugLevel
	}
	base = zerolog.New(w).With().Timestamp().Caller().Logger().Level(lvl)
	return base
}

// Debugf logs a formatted debug message when Debug is enabled.
func Debugf(format string, v ...any) {
	if Debug {
		base.Debug().Msgf(format, v...)
	}
}
