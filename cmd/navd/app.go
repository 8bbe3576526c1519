package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/CAFxX/httpcompression"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/wayfinder/pkg/httpserver"
	"github.com/dmitrymomot/wayfinder/pkg/matcher"
	"github.com/dmitrymomot/wayfinder/pkg/metrics"
	"github.com/dmitrymomot/wayfinder/pkg/navhttp"
	"github.com/dmitrymomot/wayfinder/pkg/session"
	"github.com/dmitrymomot/wayfinder/pkg/visitor"
)

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	if err := cfg.Router.Validate(); err != nil {
		return err
	}

	m, err := matcher.NewFromFile(cfg.Router.RoutesFile, matcher.WithLogger(log))
	if err != nil {
		return fmt.Errorf("load routes: %w", err)
	}

	store, closeStore, err := session.NewStore(ctx, cfg.Session, session.WithLogger(log))
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}

	collector := metrics.New(metrics.WithNamespace(cfg.MetricsNamespace))
	reg := metrics.NewRegistry(collector)

	h := navhttp.New(m, store,
		navhttp.WithLogger(log),
		navhttp.WithTimeout(cfg.Server.NavigateTimeout),
		navhttp.WithObserver(collector.Observer()),
		navhttp.WithVisitorOptions(visitor.WithSecrets(cfg.VisitorSecrets...)),
	)

	mux, err := newMux(h, reg, store, log)
	if err != nil {
		_ = closeStore()
		return err
	}

	srv := httpserver.NewFromConfig(cfg.Server,
		httpserver.WithLogger(log),
		httpserver.WithOnShutdown(func(context.Context) error { return closeStore() }),
	)
	return srv.Run(ctx, mux)
}

// newMux mounts the navigation API under /nav next to the probes and
// the metrics endpoint.
func newMux(h *navhttp.Handler, reg *prometheus.Registry, store session.Store, log *slog.Logger) (http.Handler, error) {
	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		return nil, fmt.Errorf("compression: %w", err)
	}

	var ready []func(context.Context) error
	if p, ok := store.(session.Pinger); ok {
		ready = append(ready, p.Ping)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)

	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, ready...))
	r.Handle("/metrics", metrics.Handler(reg))
	r.With(compress).Mount("/nav", h.Routes())

	return r, nil
}
