// Package rtlog provides the structured logger pkg/runtime writes its
// diagnostics through (§6, §7): a single zerolog.Logger, configured once by
// cmd/purplert, reached via a package-level accessor rather than threading
// a *zerolog.Logger through every constructor.
package rtlog

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// Configure replaces the process-wide logger, typically called once from
// cmd/purplert after flags are parsed (verbosity level); the replacement
// writes plain JSON lines to w.
func Configure(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).With().Timestamp().Logger().Level(level)
}

// Log returns the current process-wide logger.
func Log() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &log
}
