package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

// NewLogger returns a text logger writing every record at or above level
// to each of writers. With no writers the logger discards everything.
func NewLogger(level slog.Leveler, writers ...io.Writer) *slog.Logger {
	var handlers []slog.Handler
	for _, w := range writers {
		if w == nil {
			continue
		}
		handlers = append(handlers, slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
		}))
	}
	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// Tee returns a logger that also writes records at or above level to w.
// The headless run uses it to show warnings on stderr.
func Tee(l *slog.Logger, w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slogmulti.Fanout(
		l.Handler(),
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	))
}

// WithComponent returns a logger that tags records with the component name.
func WithComponent(l *slog.Logger, component string) *slog.Logger {
	return l.With(slog.String("component", component))
}

// OpenLogFile opens path for appending, creating it and its directory as
// needed.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, NewOperationError("open log", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, NewOperationError("open log", path, err)
	}
	return f, nil
}
