// Package log builds the configured slog.Logger for the padcore CLI.
//
// Without a log file, records below error level go to stdout and error
// records to stderr, so normal output can be piped while errors stay
// visible.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LevelTrace is a custom slog level below Debug for very verbose output.
const LevelTrace slog.Level = -8

// ParseLevel maps a level name to its slog level, defaulting to Info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// splitHandler routes error records to one handler and everything else to
// another.
type splitHandler struct {
	out slog.Handler
	err slog.Handler
}

func (h splitHandler) pick(level slog.Level) slog.Handler {
	if level >= slog.LevelError {
		return h.err
	}
	return h.out
}

func (h splitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.pick(level).Enabled(ctx, level)
}

func (h splitHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.pick(r.Level).Handle(ctx, r)
}

func (h splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return splitHandler{out: h.out.WithAttrs(attrs), err: h.err.WithAttrs(attrs)}
}

func (h splitHandler) WithGroup(name string) slog.Handler {
	return splitHandler{out: h.out.WithGroup(name), err: h.err.WithGroup(name)}
}

// Setup builds a logger for the given level name and optional file path.
// The returned closer is non-nil when a log file was opened.
func Setup(levelName, file string) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(levelName)
	opts := &slog.HandlerOptions{Level: level}

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return slog.New(slog.NewTextHandler(f, opts)), f, nil
	}

	h := splitHandler{
		out: slog.NewTextHandler(os.Stdout, opts),
		err: slog.NewTextHandler(os.Stderr, opts),
	}
	return slog.New(h), nil, nil
}
