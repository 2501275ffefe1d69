// Package logx sets up file-backed logging. The TUI owns stdout and
// stderr, so log output goes to a file under the user's state directory.
package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Setup opens the log file and returns a logger writing to it, plus a
// close function. The level comes from WORDWISE_LOG_LEVEL (default info).
func Setup() (zerolog.Logger, func(), error) {
	path, err := defaultLogPath()
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}

	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("WORDWISE_LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}

	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, func() { f.Close() }, nil
}

// Discard returns a logger that drops everything.
func Discard() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// defaultLogPath resolves $XDG_STATE_HOME/wordwise/wordwise.log, falling
// back to ~/.local/state.
func defaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}

	p := filepath.Join(stateHome, "wordwise", "wordwise.log")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	return p, nil
}
