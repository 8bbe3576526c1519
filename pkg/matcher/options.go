package matcher

import (
	"log/slog"

	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// Option configures a Matcher.
type Option func(*Matcher)

// WithComponents sets the registry component names in route tables
// resolve against. Names missing from it become placeholder components
// carrying only the name.
func WithComponents(registry map[string]*route.Component) Option {
	return func(m *Matcher) {
		for name, c := range registry {
			m.components[name] = c
		}
	}
}

// WithGuards registers named per-route guards for route tables.
func WithGuards(guards map[string]route.Guard) Option {
	return func(m *Matcher) {
		for name, g := range guards {
			m.guards[name] = g
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(m *Matcher) {
		if log != nil {
			m.log = log
		}
	}
}
