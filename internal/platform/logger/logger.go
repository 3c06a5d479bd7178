package logger

import (
	"log/slog"
	"os"
)

// New returns the application logger: structured JSON to stdout.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
