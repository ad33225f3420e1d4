// Package logging configures the global zerolog logger.
//
// One-shot commands log to stderr. While the full-screen timer is running
// the terminal belongs to the UI, so logs go to a file instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// map to info.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// SetLevel sets the global level from a level name; debug forces debug.
func SetLevel(name string, debug bool) {
	zerolog.SetGlobalLevel(ParseLevel(name))
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// ToConsole routes the global logger to w as human-readable lines.
func ToConsole(w io.Writer) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()
}

// ToFile routes the global logger to path as JSON lines. The returned
// closer must be called on exit.
func ToFile(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// Discard silences the global logger.
func Discard() {
	log.Logger = zerolog.Nop()
}
