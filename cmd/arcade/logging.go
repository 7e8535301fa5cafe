package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// setupLogging installs the default logger. Commands that own the terminal
// log to a file so the screen stays clean; the rest log to stderr.
// The returned func closes the log file.
func setupLogging(ownsTerminal bool) (func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	path := flagLogFile
	if path == "" && ownsTerminal {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		path = filepath.Join(home, ".arcade", "arcade.log")
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	if path != "" {
		f, openErr := openLogFile(path)
		if openErr != nil {
			return nil, openErr
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "arcade",
	})
	if path != "" {
		logger.SetFormatter(log.LogfmtFormatter)
		logger.SetTimeFormat(time.RFC3339)
	}
	log.SetDefault(logger)
	return closeFn, nil
}

func openLogFile(path string) (*os.File, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// mustLogging sets up logging or exits.
func mustLogging(ownsTerminal bool) func() {
	closeFn, err := setupLogging(ownsTerminal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return closeFn
}
