package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures NewHandler. The zero value logs text at info level to stderr.
type Options struct {
	Level  slog.Level
	Format string
	Writer io.Writer
}

// NewHandler creates the application log handler. A nil opts uses the defaults.
func NewHandler(opts *Options) slog.Handler {
	if opts == nil {
		opts = &Options{}
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if strings.EqualFold(opts.Format, FormatJSON) {
		return slog.NewJSONHandler(w, handlerOpts)
	}

	return slog.NewTextHandler(w, handlerOpts)
}

// ParseLevel maps a level name to slog.Level, falling back to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}

	return level
}
