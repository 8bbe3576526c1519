package guard

import (
	"errors"
	"fmt"
)

// ErrSuperseded is returned by Run when the transition no longer owns
// the navigation.
var ErrSuperseded = errors.New("guard: transition superseded")

// ComponentLoadError reports a lazy component that failed to load.
type ComponentLoadError struct {
	Record string
	Slot   string
	Err    error
}

func (e *ComponentLoadError) Error() string {
	return fmt.Sprintf("guard: failed to resolve async component %s of %q: %v", e.Slot, e.Record, e.Err)
}

func (e *ComponentLoadError) Unwrap() error {
	return e.Err
}

// IsComponentLoadError reports whether err came from a lazy component.
func IsComponentLoadError(err error) bool {
	var e *ComponentLoadError
	return errors.As(err, &e)
}
