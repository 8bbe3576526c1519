// Package config loads settings from the process environment, optionally
// seeded from .env files, into tagged structs.
//
// Parsing is done by github.com/caarlos0/env/v11 and .env files are read
// with github.com/joho/godotenv. Load caches the first successful result
// per struct type so every package of a process sees the same values;
// Parse bypasses the cache and ForceReload refreshes it.
//
// The package also carries the shared settings structs:
//
//   - Router: history mode (NAV_MODE), base path (NAV_BASE), hash fallback
//     (NAV_FALLBACK), route table file (NAV_ROUTES_FILE) and logging
//     (APP_ENV, LOG_LEVEL, LOG_FORMAT). Validate normalizes the mode.
//   - Server: HTTP address, timeouts and the per-navigation timeout used
//     by cmd/navd.
//
// Usage:
//
//	if err := config.LoadEnv(".env", ".env.local"); err != nil {
//		return err
//	}
//	var cfg config.Router
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//
// Errors: ErrParsingConfig, ErrLoadingEnvFile, ErrInvalidMode and
// ErrNilPointer, all comparable with errors.Is. ResetCache clears the
// cache between tests.
package config
