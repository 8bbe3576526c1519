// Package httpserver runs the navd HTTP host with graceful shutdown.
//
// Run binds the listener first, so address errors are returned at once
// wrapped in ErrStart, then serves until the context ends or the process
// receives an interrupt or SIGTERM. Shutdown drains in-flight requests
// within the shutdown timeout and then runs the cleanup functions
// registered with WithOnShutdown, for example closing a redis client.
//
//	srv := httpserver.NewFromConfig(cfg.Server,
//		httpserver.WithLogger(log),
//		httpserver.WithOnShutdown(closeStore),
//	)
//	if err := srv.Run(ctx, mux); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness and readiness probes.
package httpserver
