// Package obs contains observability utilities: logging and metrics.
package obs

import (
	"log/slog"
	"os"
)

// Logger is the global structured logger used by the service. It starts
// as the slog default so packages can log before InitLogger runs.
var Logger = slog.Default()

// InitLogger initializes the global Logger with a JSON handler at info
// level.
func InitLogger() {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	Logger = slog.New(h)
}
