// Package logging provides leveled logging helpers for Audiorr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level controls debug verbosity. Messages sent to D with a level above
// this value are discarded.
var Level int

var (
	mu      sync.Mutex
	logger  = newConsoleLogger(os.Stderr)
	logFile *os.File
)

func newConsoleLogger(w io.Writer) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(cw).With().Timestamp().Logger()
}

// SetupLogging creates and/or opens the log file inside targetDir and
// mirrors all console output into it.
func SetupLogging(targetDir string) error {
	mu.Lock()
	defer mu.Unlock()

	fpath := filepath.Join(targetDir, "audiorr.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", fpath, err)
	}

	logFile = f
	cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	logger = zerolog.New(zerolog.MultiLevelWriter(cw, f)).With().Timestamp().Logger()

	logger.Info().Msgf("=========== %s ===========", time.Now().Format(time.RFC1123Z))
	return nil
}

// CloseLogFile closes the session log file, if one was opened.
func CloseLogFile() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// I logs informational messages.
func I(format string, args ...any) {
	logger.Info().Msgf(format, args...)
}

// S logs success messages.
func S(format string, args ...any) {
	logger.Info().Str("status", "ok").Msgf(format, args...)
}

// W logs warnings.
func W(format string, args ...any) {
	logger.Warn().Msgf(format, args...)
}

// E logs errors.
func E(format string, args ...any) {
	logger.Error().Msgf(format, args...)
}

// D logs debug messages at or below the configured debug level.
func D(l int, format string, args ...any) {
	if l > Level {
		return
	}
	logger.Debug().Msgf(format, args...)
}
