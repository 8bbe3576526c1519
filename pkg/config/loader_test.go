package config_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wayfinder/pkg/config"
)

type navDefaults struct {
	Mode     string `env:"NAVT_DEFAULT_MODE" envDefault:"abstract"`
	Capacity int    `env:"NAVT_DEFAULT_CAPACITY" envDefault:"42"`
	Fallback bool   `env:"NAVT_DEFAULT_FALLBACK" envDefault:"true"`
}

type navOverrides struct {
	Mode     string `env:"NAVT_MODE" envDefault:"abstract"`
	Capacity int    `env:"NAVT_CAPACITY" envDefault:"42"`
	Fallback bool   `env:"NAVT_FALLBACK" envDefault:"true"`
}

type navCached struct {
	Base string `env:"NAVT_CACHED_BASE" envDefault:"/"`
}

type navRequired struct {
	RoutesFile string `env:"NAVT_ROUTES_FILE,required"`
}

type navFirst struct {
	Value string `env:"NAVT_FIRST" envDefault:"one"`
}

type navSecond struct {
	Value string `env:"NAVT_SECOND" envDefault:"two"`
}

func TestLoad(t *testing.T) {
	t.Run("environment values", func(t *testing.T) {
		t.Setenv("NAVT_MODE", "hash")
		t.Setenv("NAVT_CAPACITY", "100")
		t.Setenv("NAVT_FALLBACK", "false")

		var cfg navOverrides
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, navOverrides{Mode: "hash", Capacity: 100, Fallback: false}, cfg)
	})

	t.Run("defaults", func(t *testing.T) {
		os.Unsetenv("NAVT_DEFAULT_MODE")
		os.Unsetenv("NAVT_DEFAULT_CAPACITY")
		os.Unsetenv("NAVT_DEFAULT_FALLBACK")

		var cfg navDefaults
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, navDefaults{Mode: "abstract", Capacity: 42, Fallback: true}, cfg)
	})

	t.Run("missing required value is not cached", func(t *testing.T) {
		os.Unsetenv("NAVT_ROUTES_FILE")

		var cfg navRequired
		err := config.Load(&cfg)
		assert.True(t, errors.Is(err, config.ErrParsingConfig))

		t.Setenv("NAVT_ROUTES_FILE", "routes.yaml")
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "routes.yaml", cfg.RoutesFile)
	})

	t.Run("cached per type", func(t *testing.T) {
		t.Setenv("NAVT_CACHED_BASE", "/first")
		var first navCached
		require.NoError(t, config.Load(&first))

		t.Setenv("NAVT_CACHED_BASE", "/second")
		var second navCached
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "/first", second.Base)
	})

	t.Run("types do not share entries", func(t *testing.T) {
		t.Setenv("NAVT_FIRST", "a")
		t.Setenv("NAVT_SECOND", "b")

		var one navFirst
		var two navSecond
		require.NoError(t, config.Load(&one))
		require.NoError(t, config.Load(&two))
		assert.Equal(t, "a", one.Value)
		assert.Equal(t, "b", two.Value)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *navOverrides
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
		assert.Panics(t, func() { config.MustLoad(cfg) })
	})
}

func TestParse(t *testing.T) {
	t.Setenv("NAVT_CACHED_BASE", "/parsed")
	cfg, err := config.Parse[navCached]()
	require.NoError(t, err)
	assert.Equal(t, "/parsed", cfg.Base)
}

type envFileConfig struct {
	Mode string `env:"NAVTEST_MODE"`
	Base string `env:"NAVTEST_BASE"`
}

func TestLoadEnv(t *testing.T) {
	t.Cleanup(func() {
		os.Unsetenv("NAVTEST_MODE")
		os.Unsetenv("NAVTEST_BASE")
	})

	t.Run("later files override earlier ones", func(t *testing.T) {
		require.NoError(t, config.LoadEnv("testdata/.env.nav", "testdata/.env.override"))

		var cfg envFileConfig
		require.NoError(t, config.ForceReload(&cfg))
		assert.Equal(t, "hash", cfg.Mode)
		assert.Equal(t, "/override", cfg.Base)
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.LoadEnv("testdata/missing.env")
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
		assert.Panics(t, func() { config.MustLoadEnv("testdata/missing.env") })
	})
}

func TestForceReload(t *testing.T) {
	t.Setenv("NAVT_CACHED_BASE", "/cached")
	config.ResetCache()

	var first navCached
	require.NoError(t, config.Load(&first))

	t.Setenv("NAVT_CACHED_BASE", "/fresh")
	var second navCached
	require.NoError(t, config.ForceReload(&second))
	assert.Equal(t, "/fresh", second.Base)

	var third navCached
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "/fresh", third.Base)

	assert.ErrorIs(t, config.ForceReload[navCached](nil), config.ErrNilPointer)
}

func TestRouterDefaults(t *testing.T) {
	config.ResetCache()

	var cfg config.Router
	require.NoError(t, config.Load(&cfg))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.ModeAbstract, cfg.Mode)
	assert.Equal(t, "/", cfg.Base)
	assert.True(t, cfg.Fallback)
}

func TestRouterValidate(t *testing.T) {
	tests := []struct {
		mode    string
		want    string
		wantErr bool
	}{
		{mode: "HISTORY", want: config.ModeHistory},
		{mode: " hash ", want: config.ModeHash},
		{mode: "", want: config.ModeAbstract},
		{mode: "memory", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg := config.Router{Mode: tt.mode}
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Mode)
		})
	}
}

func TestRouterValidateLogFormat(t *testing.T) {
	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{format: "JSON", want: config.LogFormatJSON},
		{format: " Text ", want: config.LogFormatText},
		{format: "", want: config.LogFormatText},
		{format: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := config.Router{Mode: config.ModeAbstract, LogFormat: tt.format}
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidLogFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.LogFormat)
		})
	}
}

func TestServerDefaults(t *testing.T) {
	config.ResetCache()

	var cfg config.Server
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}
