// Package logging configures slog for stuckbar.
//
// Logs go to stderr as text, or to a rotating JSON file when a path is
// configured. stdout is never used: it carries console narration and the
// MCP stdio transport.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls Setup.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string
	// File, when set, receives JSON logs with size-based rotation.
	File string
	// Stderr receives text logs when File is empty. Defaults to os.Stderr.
	Stderr io.Writer
}

// ParseLevel converts a log level string to slog.Level.
// Valid values: "debug", "info", "warn", "error" (case-insensitive).
// Returns slog.LevelWarn for unrecognized values.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Setup installs the default slog logger and returns a cleanup function
// that closes any opened log file.
func Setup(opts Options) (cleanup func(), err error) {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	if opts.File == "" {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(w, handlerOpts)))
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
		return nil, err
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(rotator, handlerOpts)))

	return func() { rotator.Close() }, nil
}
