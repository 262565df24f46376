package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

// setupLogging installs the default slog handler. Interactive use gets the
// charmbracelet/log console handler; --log-json switches to JSON on stdout.
func setupLogging(jsonOut bool, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	if jsonOut {
		handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel(lvl)})
		slog.SetDefault(slog.New(handler))
		return nil
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "shatter",
		Level:           lvl,
	})
	slog.SetDefault(slog.New(logger))
	return nil
}

func slogLevel(l log.Level) slog.Level {
	switch {
	case l <= log.DebugLevel:
		return slog.LevelDebug
	case l <= log.InfoLevel:
		return slog.LevelInfo
	case l <= log.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
