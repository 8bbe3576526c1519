package visitor

import "errors"

var (
	ErrInvalidFormat    = errors.New("visitor: invalid cookie format")
	ErrInvalidSignature = errors.New("visitor: invalid cookie signature")
)
