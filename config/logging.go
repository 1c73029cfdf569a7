package config

import (
	"fmt"
	"io"
	"log/slog"
)

// Handler creates the slog handler described by the logging section.
func (c LoggingConfig) Handler(w io.Writer) (slog.Handler, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}

	switch c.Format {
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	default:
		return slog.NewTextHandler(w, opts), nil
	}
}
