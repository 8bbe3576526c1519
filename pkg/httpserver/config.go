package httpserver

import "github.com/dmitrymomot/wayfinder/pkg/config"

// NewFromConfig creates a Server from the HTTP section of the navd
// configuration. Options override config values.
func NewFromConfig(cfg config.Server, opts ...Option) *Server {
	configOpts := []Option{
		WithAddr(cfg.Addr),
		WithTimeouts(cfg.ReadTimeout, cfg.WriteTimeout, cfg.IdleTimeout),
		WithShutdownTimeout(cfg.ShutdownTimeout),
	}
	return New(append(configOpts, opts...)...)
}
