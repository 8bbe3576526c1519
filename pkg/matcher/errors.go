package matcher

import "errors"

var (
	ErrUnknownName        = errors.New("matcher: no route with this name")
	ErrUnknownParent      = errors.New("matcher: parent route not found")
	ErrUnknownGuard       = errors.New("matcher: guard is not registered")
	ErrMissingParam       = errors.New("matcher: missing required param")
	ErrInvalidPattern     = errors.New("matcher: invalid route path")
	ErrUnsupportedPattern = errors.New("matcher: unsupported route path syntax")
	ErrDuplicateName      = errors.New("matcher: duplicate route name")
	ErrTooManyRedirects   = errors.New("matcher: too many route redirects")
	ErrUnsupportedFormat  = errors.New("matcher: unsupported route table format")
	ErrDecodeTable        = errors.New("matcher: failed to decode route table")
)

// IsNotFound reports whether err is a lookup of an unknown named route.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownName)
}
