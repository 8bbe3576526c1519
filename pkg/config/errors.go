package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Load
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrLoadingEnvFile is returned when a .env file cannot be read
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrInvalidMode is returned by Router.Validate for unknown history modes
	ErrInvalidMode = errors.New("invalid history mode")

	// ErrInvalidLogFormat is returned by Router.Validate for unknown log formats
	ErrInvalidLogFormat = errors.New("invalid log format")
)
