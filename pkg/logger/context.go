package logger

import (
	"context"
	"log/slog"
)

type navigationIDKey struct{}

// WithNavigationID stores the id of the navigation being processed.
func WithNavigationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, navigationIDKey{}, id)
}

// NavigationIDFromContext returns the stored navigation id, if any.
func NavigationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(navigationIDKey{}).(string)
	return id
}

func navigationIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id := NavigationIDFromContext(ctx); id != "" {
		return NavigationID(id), true
	}
	return slog.Attr{}, false
}

// WithContextValue returns an extractor that logs ctx.Value(key) under
// name when present.
func WithContextValue(name string, key any) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := ctx.Value(key); v != nil {
			return slog.Any(name, v), true
		}
		return slog.Attr{}, false
	}
}

// SetAsDefault installs l as slog's default logger.
func SetAsDefault(l *slog.Logger) {
	if l != nil {
		slog.SetDefault(l)
	}
}
