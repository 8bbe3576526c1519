package config

import (
	"fmt"
	"strings"
	"time"
)

// History modes accepted by Router.Mode.
const (
	ModeHistory  = "history"
	ModeHash     = "hash"
	ModeAbstract = "abstract"
)

// Router holds the navigation engine settings.
type Router struct {
	Mode       string `env:"NAV_MODE" envDefault:"abstract"`
	Base       string `env:"NAV_BASE" envDefault:"/"`
	Fallback   bool   `env:"NAV_FALLBACK" envDefault:"true"`
	RoutesFile string `env:"NAV_ROUTES_FILE" envDefault:"routes.yaml"`

	AppEnv    string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Log output formats accepted by Router.LogFormat.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Validate normalizes Mode and LogFormat and rejects unknown values.
func (r *Router) Validate() error {
	r.LogFormat = strings.ToLower(strings.TrimSpace(r.LogFormat))
	switch r.LogFormat {
	case "":
		r.LogFormat = LogFormatText
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, r.LogFormat)
	}

	r.Mode = strings.ToLower(strings.TrimSpace(r.Mode))
	switch r.Mode {
	case "":
		r.Mode = ModeAbstract
	case ModeHistory, ModeHash, ModeAbstract:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, r.Mode)
	}
	return nil
}

// Server holds the HTTP host settings used by cmd/navd.
type Server struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	NavigateTimeout time.Duration `env:"NAV_TIMEOUT" envDefault:"5s"`
}
