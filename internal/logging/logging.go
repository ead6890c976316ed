// Package logging provides the structured logger shared by the CLI, the
// MCP server and the archive reader. Output goes to stderr so it never mixes
// with reports written to stdout.
package logging

import (
	"io"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

var (
	mu      sync.RWMutex
	current = New(os.Stderr, false)
)

// New creates a logger writing to w. verbose enables debug output.
func New(w io.Writer, verbose bool) *charmlog.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: false,
		Prefix:          "jarscn",
	})
	if verbose {
		logger.SetLevel(charmlog.DebugLevel)
	} else {
		logger.SetLevel(charmlog.InfoLevel)
	}
	return logger
}

// Discard returns a logger that drops everything
func Discard() *charmlog.Logger {
	return charmlog.NewWithOptions(io.Discard, charmlog.Options{})
}

// Default returns the process-wide logger
func Default() *charmlog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetDefault replaces the process-wide logger
func SetDefault(logger *charmlog.Logger) {
	if logger == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	current = logger
}

// Configure rebuilds the process-wide logger on stderr with the given verbosity
func Configure(verbose bool) *charmlog.Logger {
	logger := New(os.Stderr, verbose)
	SetDefault(logger)
	return logger
}
