package slogx

import (
	"context"
	"log/slog"
	"sync"
)

type ctxKey struct{}

type accessKey struct{}

// accessAttrs collects attributes for the access log line of one request.
type accessAttrs struct {
	mu    sync.Mutex
	attrs []slog.Attr
}

func (a *accessAttrs) add(attrs ...slog.Attr) {
	a.mu.Lock()
	a.attrs = append(a.attrs, attrs...)
	a.mu.Unlock()
}

func (a *accessAttrs) snapshot() []any {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]any, len(a.attrs))
	for i, attr := range a.attrs {
		out[i] = attr
	}
	return out
}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// WithAttrs returns a context whose logger carries attrs. Under
// HTTPMiddleware the attrs also land on the request's access log line.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if a, ok := ctx.Value(accessKey{}).(*accessAttrs); ok {
		a.add(attrs...)
	}

	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return WithContext(ctx, FromContext(ctx).With(args...))
}
