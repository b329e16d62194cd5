// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package shared holds the logging setup used by every wallet component.
package shared

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	stdlog "log"

	"github.com/rs/zerolog"
)

var (
	rootMu sync.Mutex
	root   = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// ParseLogLevel converts a textual log level into a zerolog.Level, defaulting
// to info on anything unrecognized.
func ParseLogLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// CreateFileLogger points the root logger at a human-readable log file and
// returns it. Stdlib log users in dependencies are redirected to the same
// file so nothing scribbles over the terminal.
func CreateFileLogger(logpath string, level zerolog.Level) zerolog.Logger {
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if err := os.MkdirAll(filepath.Dir(logpath), 0o755); err != nil {
		panic(fmt.Errorf("failed to create log directory: %w", err))
	}
	logFile, err := os.OpenFile(logpath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		panic(fmt.Errorf("failed to open log file: %w", err))
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        logFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}).With().Timestamp().Logger().Level(level)

	stdlog.SetOutput(logFile)
	stdlog.SetFlags(stdlog.LstdFlags | stdlog.Lmicroseconds | stdlog.Lshortfile)

	rootMu.Lock()
	root = logger
	rootMu.Unlock()

	return logger
}

// NamedLogger derives a child of the root logger tagged with the component
// name. Before CreateFileLogger runs (e.g. in tests), children log to stdout.
func NamedLogger(component string) zerolog.Logger {
	rootMu.Lock()
	logger := root
	rootMu.Unlock()

	component = strings.TrimSpace(component)
	if component == "" {
		return logger
	}
	return logger.With().Str("component", component).Logger()
}
