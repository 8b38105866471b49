// Package logging configures the process-wide slog logger for the
// gaugekit commands. Options come from the config file or from the
// environment:
//
//   - GAUGEKIT_LOG_LEVEL=debug|info|warn|error
//   - GAUGEKIT_LOG_FORMAT=text|json
//   - GAUGEKIT_LOG_FILE=<path> (switches output to a rotated file)
//
// The library packages themselves never log.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization.
type Options struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
	File   string `yaml:"file"`   // optional path for rotated file logging
}

// FromEnv builds Options from environment variables.
func FromEnv() Options {
	return Options{
		Level:  getenv("GAUGEKIT_LOG_LEVEL", "info"),
		Format: getenv("GAUGEKIT_LOG_FORMAT", "text"),
		File:   os.Getenv("GAUGEKIT_LOG_FILE"),
	}
}

// Init builds a logger from opts and installs it as the slog default.
func Init(opts Options) *slog.Logger {
	var w io.Writer = os.Stderr
	if strings.TrimSpace(opts.File) != "" {
		w = &lj.Logger{Filename: opts.File, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
	}

	ho := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		h = slog.NewJSONHandler(w, ho)
	} else {
		h = slog.NewTextHandler(w, ho)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts a level name to a slog.Level, defaulting to
// info for anything it does not recognize.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
