// Package logger builds the structured loggers used across the router.
//
// New returns a *slog.Logger configured through Option functions: output
// format (text or json), minimum level, default attributes and
// ContextExtractor callbacks. The handler is wrapped so that
// the extractors run on every record. The navigation id stored with
// WithNavigationID is always extracted, so guards that log with the
// navigation context are correlated with the transition that ran them.
//
// Attribute helpers (Route, Failure, Operation, Error, ...) keep key names
// consistent between packages.
//
//	log := logger.New(logger.WithEnvironment("development", "navd"))
//	ctx := logger.WithNavigationID(context.Background(), "c0ffee")
//	log.InfoContext(ctx, "navigation confirmed",
//	    logger.Route("to", to),
//	    logger.Operation("push"),
//	)
package logger
