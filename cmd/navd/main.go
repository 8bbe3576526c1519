// Command navd serves the navigation engine over HTTP for server
// rendering and thin clients.
//
// Configuration comes from the environment, optionally seeded from .env:
// NAV_ROUTES_FILE names the route table, REDIS_URL selects the redis
// session store (memory otherwise) and HTTP_ADDR the listen address.
package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/wayfinder/pkg/config"
	"github.com/dmitrymomot/wayfinder/pkg/logger"
	"github.com/dmitrymomot/wayfinder/pkg/session"
	"github.com/dmitrymomot/wayfinder/pkg/visitor"
)

type appConfig struct {
	Router  config.Router
	Server  config.Server
	Session session.Config

	VisitorSecrets   []string `env:"VISITOR_SECRETS" envSeparator:","`
	MetricsNamespace string   `env:"METRICS_NAMESPACE" envDefault:"wayfinder"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)
	if err := cfg.Router.Validate(); err != nil {
		logger.New().Error("invalid configuration", logger.Error(err))
		os.Exit(1)
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Router.AppEnv, "navd"),
		logger.WithRawLevel(cfg.Router.LogLevel),
		logger.WithFormat(logger.Format(cfg.Router.LogFormat)),
		logger.WithContextExtractors(visitor.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("navd stopped", logger.Error(err))
		os.Exit(1)
	}
}
