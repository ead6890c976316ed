package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"
)

// generateTimestampedFileName generates a filename with timestamp suffix
func generateTimestampedFileName(command, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", command, timestamp, extension)
}

// splitJSONOutputArg separates a trailing JSON report path from the inputs,
// so `jarscn analyze app.jar metrics.json` behaves like the original
// two-argument form. A lone argument is always an input.
func splitJSONOutputArg(args []string) ([]string, string) {
	if len(args) < 2 {
		return args, ""
	}
	last := args[len(args)-1]
	if strings.EqualFold(filepath.Ext(last), ".json") {
		return args[:len(args)-1], last
	}
	return args, ""
}

// isInteractiveEnvironment returns true if the environment appears to be
// an interactive TTY session (and not CI), used to decide auto-open behavior.
func isInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
