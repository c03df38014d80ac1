// Package logger provides slog-backed logging for the engine.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds the logger settings loaded from the config file.
type Config struct {
	// LogLevel is the minimum level to log ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`

	// LogFilePath is the path of the output log file. Empty or "-"
	// means stderr.
	LogFilePath string `toml:"log_file"`
}

// Level parses the configured level string, defaulting to Info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitFromConfig opens the configured output and initializes the
// package. The returned closer is non-nil when a log file was opened;
// the caller defers it.
func InitFromConfig(cfg Config) (io.Closer, error) {
	if cfg.LogFilePath == "" || cfg.LogFilePath == "-" {
		Init(cfg.Level(), os.Stderr)
		return nil, nil
	}

	f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		// Fall back to stderr rather than failing startup.
		Init(cfg.Level(), os.Stderr)
		return nil, err
	}
	Init(cfg.Level(), f)
	return f, nil
}
