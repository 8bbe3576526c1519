package route

import "errors"

var (
	ErrGuardFailed  = errors.New("route: navigation guard failed")
	ErrNilComponent = errors.New("route: lazy component resolved to nil")
)
