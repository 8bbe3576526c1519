package visitor

import (
	"net/http"
	"slices"
	"time"
)

const (
	Header            = "X-Visitor-ID"
	DefaultCookieName = "wf_visitor"
)

type options struct {
	cookieName string
	maxAge     time.Duration
	secure     bool
	sameSite   http.SameSite
	secrets    []string
}

func defaultOptions() *options {
	return &options{
		cookieName: DefaultCookieName,
		maxAge:     365 * 24 * time.Hour,
		sameSite:   http.SameSiteLaxMode,
	}
}

type Option func(*options)

// WithCookieName overrides the cookie carrying the id.
func WithCookieName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.cookieName = name
		}
	}
}

// WithMaxAge sets the cookie lifetime.
func WithMaxAge(d time.Duration) Option {
	return func(o *options) { o.maxAge = d }
}

// WithSecure marks the cookie Secure.
func WithSecure(secure bool) Option {
	return func(o *options) { o.secure = secure }
}

// WithSecrets enables cookie signing. The first secret signs; all of them
// verify.
func WithSecrets(secrets ...string) Option {
	return func(o *options) {
		o.secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	}
}
