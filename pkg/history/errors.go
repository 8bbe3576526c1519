package history

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// FailureType classifies an expected, non-error navigation outcome. The
// values are bit flags so IsNavigationFailure can test several at once.
type FailureType int

const (
	Redirected FailureType = 2
	Aborted    FailureType = 4
	Cancelled  FailureType = 8
	Duplicated FailureType = 16
)

func (t FailureType) String() string {
	switch t {
	case Redirected:
		return "redirected"
	case Aborted:
		return "aborted"
	case Cancelled:
		return "cancelled"
	case Duplicated:
		return "duplicated"
	default:
		return "unknown"
	}
}

var (
	// Sentinels matched by errors.Is against a *NavigationFailure.
	ErrRedirected = errors.New("history: navigation redirected")
	ErrAborted    = errors.New("history: navigation aborted")
	ErrCancelled  = errors.New("history: navigation cancelled")
	ErrDuplicated = errors.New("history: navigation duplicated")

	ErrNilRoute         = errors.New("history: matcher returned no route")
	ErrTooManyRedirects = errors.New("history: too many redirects")
	ErrInvalidSnapshot  = errors.New("history: invalid snapshot")
)

// NavigationFailure is the outcome of a navigation that ended without a
// commit for an expected reason. It is returned to the caller and never
// delivered to error callbacks.
type NavigationFailure struct {
	Type FailureType
	From *route.Route
	To   *route.Route

	cause error
}

func newFailure(t FailureType, from, to *route.Route) *NavigationFailure {
	return &NavigationFailure{Type: t, From: from, To: to}
}

func (f *NavigationFailure) Error() string {
	switch f.Type {
	case Redirected:
		return fmt.Sprintf("Redirected when going from %q to %q via a navigation guard.", f.From.FullPath(), f.To.FullPath())
	case Duplicated:
		return fmt.Sprintf("Avoided redundant navigation to current location: %q.", f.From.FullPath())
	case Cancelled:
		return fmt.Sprintf("Navigation cancelled from %q to %q with a new navigation.", f.From.FullPath(), f.To.FullPath())
	case Aborted:
		return fmt.Sprintf("Navigation aborted from %q to %q via a navigation guard.", f.From.FullPath(), f.To.FullPath())
	default:
		return fmt.Sprintf("Navigation failed from %q to %q.", f.From.FullPath(), f.To.FullPath())
	}
}

// Is matches the sentinel for the failure type.
func (f *NavigationFailure) Is(target error) bool {
	switch target {
	case ErrRedirected:
		return f.Type == Redirected
	case ErrAborted:
		return f.Type == Aborted
	case ErrCancelled:
		return f.Type == Cancelled
	case ErrDuplicated:
		return f.Type == Duplicated
	}
	return false
}

// Unwrap returns the cause, e.g. the context error of a cancelled
// navigation.
func (f *NavigationFailure) Unwrap() error {
	return f.cause
}

// IsNavigationFailure reports whether err is a *NavigationFailure of any
// of the given types. With no types any failure matches.
func IsNavigationFailure(err error, types ...FailureType) bool {
	var f *NavigationFailure
	if !errors.As(err, &f) {
		return false
	}
	if len(types) == 0 {
		return true
	}
	var mask FailureType
	for _, t := range types {
		mask |= t
	}
	return f.Type&mask != 0
}

// AsNavigationFailure extracts the failure from err.
func AsNavigationFailure(err error) (*NavigationFailure, bool) {
	var f *NavigationFailure
	ok := errors.As(err, &f)
	return f, ok
}
