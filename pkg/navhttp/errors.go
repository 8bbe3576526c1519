package navhttp

import "errors"

var (
	ErrMissingTarget = errors.New("navhttp: missing navigation target")
	ErrInvalidBody   = errors.New("navhttp: invalid request body")
	ErrNoVisitor     = errors.New("navhttp: request has no visitor id")
)
