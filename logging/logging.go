// Package logging configures the process-wide log.Logger used
// throughout ttx. A terminal multiplexer cannot log to its own stdout
// (that byte stream belongs entirely to the host terminal and the
// panes it composites), so every log line instead goes to a file.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Setup opens (creating if needed) a log file at path and redirects the
// standard logger to it, prefixed with microsecond timestamps, matching
// the teacher's own main.go log setup.
func Setup(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Lmicroseconds)
	return f, nil
}

// DefaultPath returns the default log location, under the user's cache
// directory when available, falling back to a relative path.
func DefaultPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "ttx", "ttx.log")
	}
	return "ttx.log"
}
