package metrics

import "errors"

var ErrAlreadyRegistered = errors.New("metrics: navigation collector already registered")
