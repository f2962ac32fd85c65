// Package logging sets up the file logger. The terminal belongs to the TUI,
// so log output never goes to stdout or stderr while the program runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
)

// LogPath returns the log file location, creating its directory.
func LogPath() (string, error) {
	path, err := xdg.StateFile(filepath.Join("inkwell", "inkwell.log"))
	if err != nil {
		return "", fmt.Errorf("resolving log path: %w", err)
	}
	return path, nil
}

// Open opens the log file for appending.
func Open() (*os.File, error) {
	path, err := LogPath()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// Setup opens the log file and returns a logger writing to it and to ring.
// The returned closer closes the file. A nil ring is allowed.
func Setup(debug bool, ring *Ring) (*log.Logger, io.Closer, error) {
	f, err := Open()
	if err != nil {
		return nil, nil, err
	}
	return New(f, debug, ring), f, nil
}

// New creates a logger writing to w and, when non-nil, ring.
func New(w io.Writer, debug bool, ring *Ring) *log.Logger {
	if ring != nil {
		w = io.MultiWriter(w, ring)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "inkwell",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}
