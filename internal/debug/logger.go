// Package debug provides query debug logging on top of log/slog.
//
// Logging is off by default; a process that wants to see every statement the
// executor runs calls Enable once at startup. Disabled logging is a no-op,
// not a leveled filter, so hot query paths pay nothing.
package debug

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	logger  *slog.Logger
	enabled bool
)

// Enable turns query debug logging on or off. When on, statements are
// written to stderr through a text slog handler at debug level.
func Enable(on bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = on
	if on {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		logger = nil
	}
}

// SetLogger routes debug output to a caller-supplied slog.Logger instead of
// the default stderr handler. Passing nil disables logging.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	enabled = l != nil
	logger = l
}

// Enabled reports whether debug logging is on.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Query logs an executed statement with its operation name.
func Query(op, sql string, args int) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil {
		return
	}
	l.Debug("query", "op", op, "sql", sql, "args", args)
}
