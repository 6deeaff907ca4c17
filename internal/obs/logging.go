// Package obs contains observability utilities such as logging and metrics.
package obs

import (
	"log/slog"
	"os"
	"strings"
)

var level = new(slog.LevelVar)

// Logger is the global structured logger used by the editor and the simulator.
//
// Logger writes JSON to stdout until InitLogger replaces it.
var Logger = newLogger()

func newLogger() *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// InitLogger initializes the global Logger with a JSON handler at the current level.
func InitLogger() {
	Logger = newLogger()
}

// SetLevel changes the minimum level of Logger. Unknown names select info.
func SetLevel(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

// Level returns the current minimum level of Logger.
func Level() slog.Level { return level.Level() }
