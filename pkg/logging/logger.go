// Package logging wraps github.com/rs/zerolog with the contextual
// helpers the rest of the module uses: a global setup call plus a
// GetLogger family that tags every entry with a component name.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	Format     string `json:"format"`      // json, pretty
	OutputFile string `json:"output_file"` // file path for logs; empty disables file output
	Console    bool   `json:"console"`     // also log to console
}

// DefaultLogConfig returns sensible defaults: info level, console only.
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:   "info",
		Format:  "json",
		Console: true,
	}
}

// SetupLogger configures the global logger used by GetLogger and its
// siblings.
func SetupLogger(config *LogConfig) error {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer

	if config.Console {
		if config.Format == "pretty" {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        os.Stdout,
				TimeFormat: time.RFC3339,
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	if config.OutputFile != "" {
		logDir := filepath.Dir(config.OutputFile)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return err
		}
		logFile, err := os.OpenFile(config.OutputFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		writers = append(writers, logFile)
	}

	switch len(writers) {
	case 0:
		log.Logger = zerolog.New(io.Discard).With().Timestamp().Logger()
	case 1:
		log.Logger = zerolog.New(writers[0]).With().Timestamp().Logger()
	default:
		log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	}

	log.Info().Str("level", config.Level).Str("format", config.Format).Msg("logger initialized")
	return nil
}

// GetLogger returns a logger tagged with component.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// GetParserLogger returns a logger for a single wikitext parse call.
func GetParserLogger(title string) zerolog.Logger {
	return log.With().Str("component", "wikitext").Str("title", title).Logger()
}

// GetIndexLogger returns a logger for a full-text index instance,
// tagged with its build-run ID when one is in flight.
func GetIndexLogger(buildID string) zerolog.Logger {
	l := log.With().Str("component", "search")
	if buildID != "" {
		l = l.Str("build_id", buildID)
	}
	return l.Logger()
}
