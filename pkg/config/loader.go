package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cached holds the parsed value of one config type.
type cached struct {
	mu     sync.Mutex
	loaded bool
	value  any
}

var (
	// reflect.Type -> *cached
	cache      sync.Map
	dotenvOnce sync.Once
)

func entryFor[T any]() *cached {
	e, _ := cache.LoadOrStore(reflect.TypeFor[T](), &cached{})
	return e.(*cached)
}

// LoadEnv loads one or more .env files into the process environment.
// Later files override earlier ones. With no paths the default .env in the
// working directory is loaded.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		return nil
	}
	for _, p := range paths {
		values, err := godotenv.Read(p)
		if err != nil {
			return errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", p, err))
		}
		for k, v := range values {
			if err := os.Setenv(k, v); err != nil {
				return errors.Join(ErrLoadingEnvFile, err)
			}
		}
	}
	return nil
}

// MustLoadEnv is LoadEnv that panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}

// ResetCache drops every cached configuration. Intended for tests.
func ResetCache() {
	cache.Clear()
}

// Parse reads the process environment into a new T without touching the
// cache.
func Parse[T any]() (T, error) {
	var v T
	if err := env.Parse(&v); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// Load fills v from the environment. The first successful call for a type
// is cached and later calls return the cached copy, so every package sees
// the same values. Failed parses are not cached. The default .env file is
// read once, if present.
//
//	var routerCfg config.Router
//	if err := config.Load(&routerCfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	e := entryFor[T]()
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		parsed, err := Parse[T]()
		if err != nil {
			return err
		}
		e.value, e.loaded = parsed, true
	}
	*v = e.value.(T)
	return nil
}

// MustLoad is Load that panics on failure, for settings the process
// cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// ForceReload parses the environment into v again and replaces the cached
// copy for T.
func ForceReload[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	parsed, err := Parse[T]()
	if err != nil {
		return err
	}

	e := entryFor[T]()
	e.mu.Lock()
	e.value, e.loaded = parsed, true
	e.mu.Unlock()

	*v = parsed
	return nil
}
