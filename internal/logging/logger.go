package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"podcastr/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level   string
	Format  string
	Writers []io.Writer
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)

	writers := opts.Writers
	if len(writers) == 0 {
		writers = []io.Writer{os.Stderr}
	}
	var out io.Writer
	if len(writers) == 1 {
		out = writers[0]
	} else {
		out = io.MultiWriter(writers...)
	}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(out, handlerOpts)
	case "console":
		handler = slog.NewTextHandler(out, handlerOpts)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	return slog.New(handler), nil
}

// NewFromConfig creates a logger using application config defaults. Log
// lines go to the state directory's podcastr.log so the interactive
// terminal stays reserved for prompts and reports; debug-level runs also
// mirror to stderr.
func NewFromConfig(cfg *config.Config) (*slog.Logger, func(), error) {
	if cfg == nil {
		logger, err := New(Options{Level: "info", Format: "console"})
		return logger, func() {}, err
	}

	writers := make([]io.Writer, 0, 2)
	cleanup := func() {}
	if cfg.Paths.StateDir != "" {
		if err := os.MkdirAll(cfg.Paths.StateDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("ensure state directory: %w", err)
		}
		logPath := filepath.Join(cfg.Paths.StateDir, "podcastr.log")
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, file)
		cleanup = func() { _ = file.Close() }
	}
	if parseLevel(cfg.Logging.Level) <= slog.LevelDebug {
		writers = append(writers, os.Stderr)
	}

	logger, err := New(Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Writers: writers,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return logger, cleanup, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}
