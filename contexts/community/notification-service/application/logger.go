package application

import (
	"io"
	"log/slog"
)

// ResolveLogger returns the provided logger or a discard logger so callers
// never need nil checks at call sites.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
