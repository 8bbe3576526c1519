package session

import "errors"

var (
	ErrNotFound    = errors.New("session.not_found")
	ErrExpired     = errors.New("session.expired")
	ErrInvalidKey  = errors.New("session.invalid_key")
	ErrEncode      = errors.New("session.encode_failed")
	ErrDecode      = errors.New("session.decode_failed")
	ErrStoreFailed = errors.New("session.store_failed")

	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
)

// IsNotFound reports whether no usable snapshot exists for a key, either
// because none was saved or because it expired.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrExpired)
}
