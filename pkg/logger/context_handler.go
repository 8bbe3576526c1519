package logger

import (
	"context"
	"log/slog"
	"slices"
)

// ContextExtractor pulls one attribute out of a context, for example the
// visitor id stored by an HTTP middleware.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler appends extractor attributes to every record it handles.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func withContext(h slog.Handler, extractors []ContextExtractor) slog.Handler {
	extractors = slices.DeleteFunc(slices.Clone(extractors), func(ex ContextExtractor) bool { return ex == nil })
	if len(extractors) == 0 {
		return h
	}
	return contextHandler{Handler: h, extractors: extractors}
}

func (h contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if ctx != nil {
		for _, extract := range h.extractors {
			if attr, ok := extract(ctx); ok {
				rec.AddAttrs(attr)
			}
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
