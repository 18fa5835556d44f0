package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"

	"github.com/dgnsrekt/speedquiz/ui"
)

// setupLog sends log output to a file, since the TUI owns the
// terminal. It returns a closer for the log file.
func setupLog(cfg ui.Config) (func() error, error) {
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	path := cfg.LogFile
	if path == "" {
		scope := gap.NewScope(gap.User, "speedquiz")
		dir, err := scope.CacheDir()
		if err != nil {
			return nil, fmt.Errorf("could not find cache directory: %w", err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("could not create cache directory: %w", err)
		}
		path = filepath.Join(dir, "speedquiz.log")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetReportTimestamp(true)
	return f.Close, nil
}
