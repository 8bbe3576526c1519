package wayfinder

import (
	"errors"

	"github.com/dmitrymomot/wayfinder/pkg/history"
)

var (
	ErrNilMatcher      = errors.New("wayfinder: matcher is required")
	ErrAlreadyStarted  = errors.New("wayfinder: router already started")
	ErrStopped         = errors.New("wayfinder: router stopped")
	ErrNotAbstract     = errors.New("wayfinder: operation needs the abstract history mode")
	ErrRoutesImmutable = errors.New("wayfinder: matcher does not accept new routes")
	ErrTimeout         = errors.New("wayfinder: timed out waiting for navigation")
	ErrNilRecord       = errors.New("wayfinder: route record is nil")
)

// Aliases so hosts do not need to import pkg/history for the common types.
type (
	Outcome           = history.Outcome
	Observer          = history.Observer
	NavigationFailure = history.NavigationFailure
	FailureType       = history.FailureType
)

const (
	FailureRedirected = history.Redirected
	FailureAborted    = history.Aborted
	FailureCancelled  = history.Cancelled
	FailureDuplicated = history.Duplicated
)

// IsNavigationFailure reports whether err is a navigation failure of one
// of the given types, or of any type when none are given.
func IsNavigationFailure(err error, types ...FailureType) bool {
	return history.IsNavigationFailure(err, types...)
}
