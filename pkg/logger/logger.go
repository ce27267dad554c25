// Package logger configures the application's structured logger.
//
// Production gets JSON lines for log aggregators, everything else a
// human-readable text handler. Request handlers should log through
// WithCtx so every line carries the request_id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "order_id", id)
package logger

import (
	"context"
	"log/slog"
	"os"
)

// L is the base logger. Setup replaces it; the zero value logs text to
// stdout at debug level so tests and tools work without Setup.
var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

// Setup installs the process-wide logger for the given environment.
// Extra handlers (e.g. the Mongo sink) are fanned in alongside stdout.
func Setup(production bool, extra ...slog.Handler) {
	var h slog.Handler
	if production {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	if len(extra) > 0 {
		h = fanout(append([]slog.Handler{h}, extra...))
	}

	L = slog.New(h)
	slog.SetDefault(L)
}

type ctxKey struct{}

// Inject stores a request-scoped logger in ctx. Called by the request
// logging middleware; application code rarely needs it.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// WithCtx returns the request-scoped logger stored in ctx, falling back
// to the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// fanout sends each record to every handler.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make(fanout, len(f))
	for i, h := range f {
		hs[i] = h.WithAttrs(attrs)
	}
	return hs
}

func (f fanout) WithGroup(name string) slog.Handler {
	hs := make(fanout, len(f))
	for i, h := range f {
		hs[i] = h.WithGroup(name)
	}
	return hs
}
