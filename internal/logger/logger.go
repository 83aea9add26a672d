// Package logger provides leveled diagnostic logging using zerolog.
// Program output (device records and query failures) is not logged; it is
// written to the command's output streams.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var globalLogger = zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

// Config selects level and destination of diagnostics
type Config struct {
	Level  string `yaml:"level"`
	Debug  bool   `yaml:"debug"`
	Output string `yaml:"output"` // "stderr" (default), "stdout" or "discard"
	JSON   bool   `yaml:"json"`
}

// Init replaces the global logger according to config
func Init(config Config) error {
	var output io.Writer = os.Stderr

	switch strings.ToLower(config.Output) {
	case "stdout":
		output = os.Stdout
	case "discard":
		output = io.Discard
	}

	level := zerolog.WarnLevel

	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		var err error

		level, err = zerolog.ParseLevel(strings.ToLower(config.Level))
		if err != nil {
			return err
		}
	}

	if !config.JSON {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.TimeOnly, NoColor: !isTerminal(output)}
	}

	globalLogger = zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return nil
}

// SetLevel changes the level of the global logger
func SetLevel(level zerolog.Level) {
	globalLogger = globalLogger.Level(level)
}

// GetLogger returns the global logger
func GetLogger() zerolog.Logger {
	return globalLogger
}

// WithComponent returns a child logger tagged with component
func WithComponent(component string) zerolog.Logger {
	return globalLogger.With().Str("component", component).Logger()
}

// Nop returns a logger that discards everything
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
