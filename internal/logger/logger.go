package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
)

// New builds a logger writing to w.
func New(cfg Config, w io.Writer) *slog.Logger {
	level := cfg.LogLevel()
	if cfg.IsJSON() {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmLevel(level),
		ReportTimestamp: true,
		Prefix:          "farmer",
	})
	return slog.New(handler)
}

// Open creates the configured log file and returns a logger on it along with
// a close func. With no file configured the logger discards everything.
func Open(cfg Config) (*slog.Logger, func() error, error) {
	if cfg.File == "" {
		return New(cfg, io.Discard), func() error { return nil }, nil
	}
	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(cfg, f), f.Close, nil
}

func charmLevel(level slog.Level) charmlog.Level {
	switch {
	case level <= slog.LevelDebug:
		return charmlog.DebugLevel
	case level <= slog.LevelInfo:
		return charmlog.InfoLevel
	case level <= slog.LevelWarn:
		return charmlog.WarnLevel
	default:
		return charmlog.ErrorLevel
	}
}
