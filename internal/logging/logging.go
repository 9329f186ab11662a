// Package logging builds the command-line tool's zerolog logger and adapts
// it to the client's request logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	pushover "github.com/peteraglen/pushover-go-client"
	"github.com/peteraglen/pushover-go-client/internal/config"
)

// New configures a zerolog logger writing to out.
func New(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type requestLogger struct {
	logger zerolog.Logger
}

// NewRequestLogger routes the client's request logs to logger.
func NewRequestLogger(logger zerolog.Logger) pushover.RequestLogger {
	return &requestLogger{logger: logger.With().Str("component", "pushover").Logger()}
}

func (l *requestLogger) Errorf(format string, v ...any) {
	l.logger.Error().Msgf(format, v...)
}

func (l *requestLogger) Warnf(format string, v ...any) {
	l.logger.Warn().Msgf(format, v...)
}

func (l *requestLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Msgf(format, v...)
}
