package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Error creates an "error" attribute. A nil err yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// NavigationID records the navigation identifier under "navigation_id".
func NavigationID(id string) slog.Attr {
	return slog.String("navigation_id", id)
}

// Route records a route's full path under the given key ("to", "from").
// Nil routes yield an empty Attr.
func Route(key string, r interface{ FullPath() string }) slog.Attr {
	if r == nil {
		return slog.Attr{}
	}
	return slog.String(key, r.FullPath())
}

// Location records a raw navigation target under "location".
func Location(raw string) slog.Attr {
	return slog.String("location", raw)
}

// Failure records a navigation failure type under "failure".
func Failure(kind string) slog.Attr {
	return slog.String("failure", kind)
}

// Operation records the navigation operation (push, replace, go, pop).
func Operation(op string) slog.Attr {
	return slog.String("op", op)
}

// Mode records the history mode.
func Mode(mode string) slog.Attr {
	return slog.String("mode", mode)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records an elapsed time under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Group wraps attrs under key.
func Group(key string, attrs ...slog.Attr) slog.Attr {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return slog.Group(key, args...)
}

// Errors groups several errors under "errors", skipping nils.
func Errors(errs ...error) slog.Attr {
	attrs := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			attrs = append(attrs, slog.String(strconv.Itoa(i), err.Error()))
		}
	}
	return Group("errors", attrs...)
}
