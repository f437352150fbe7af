package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/kurochkinivan/article_cleanup/internal/config"
	slogseq "github.com/sokkalf/slog-seq"
)

const seqFlushInterval = 500 * time.Millisecond

// fanoutHandler passes every record to all of its handlers.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		errs = append(errs, handler.Handle(ctx, r.Clone()))
	}
	return errors.Join(errs...)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: handlers}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &fanoutHandler{handlers: handlers}
}

// New builds the application logger. Records go to out as text and, when a
// Seq URL is configured, to Seq as well. The returned function flushes the
// Seq sink.
func New(out io.Writer, cfg config.Logging) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	console := slog.NewTextHandler(out, opts)

	if cfg.SeqURL == "" {
		return slog.New(console), func() {}
	}

	_, seqHandler := slogseq.NewLogger(
		cfg.SeqURL,
		slogseq.WithFlushInterval(seqFlushInterval),
		slogseq.WithHandlerOptions(opts),
	)
	if seqHandler == nil {
		return slog.New(console), func() {}
	}

	logger := slog.New(&fanoutHandler{
		handlers: []slog.Handler{console, seqHandler},
	})

	return logger, func() { seqHandler.Close() }
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
