package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/checkkit/pkg/config"
)

type appConfig struct {
	Lang     string   `env:"LANG" envDefault:"en"`
	LogLevel string   `env:"LOG_LEVEL" envDefault:"warn"`
	Tags     []string `env:"TAGS" envSeparator:","`
	Port     int      `env:"PORT"`
}

type requiredConfig struct {
	Token string `env:"TOKEN,required"`
}

func TestLoad(t *testing.T) {
	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[appConfig](nil), config.ErrNilPointer)
	})

	t.Run("defaults", func(t *testing.T) {
		var cfg appConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvironment(map[string]string{})))
		assert.Equal(t, "en", cfg.Lang)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("prefix", func(t *testing.T) {
		var cfg appConfig
		err := config.Load(&cfg,
			config.WithPrefix("CHECKKIT_"),
			config.WithEnvironment(map[string]string{
				"CHECKKIT_LANG": "de",
				"CHECKKIT_TAGS": "a,b",
				"LANG":          "fr",
			}),
		)
		require.NoError(t, err)
		assert.Equal(t, "de", cfg.Lang)
		assert.Equal(t, []string{"a", "b"}, cfg.Tags)
	})

	t.Run("parse errors", func(t *testing.T) {
		var cfg appConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{"PORT": "eighty"}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("required values", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg, config.WithEnvironment(map[string]string{}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)

		assert.Panics(t, func() {
			config.MustLoad(&cfg, config.WithEnvironment(map[string]string{}))
		})
	})

	t.Run("process environment", func(t *testing.T) {
		t.Setenv("CFGTEST_LOG_LEVEL", "debug")

		var cfg appConfig
		require.NoError(t, config.Load(&cfg, config.WithPrefix("CFGTEST_")))
		assert.Equal(t, "debug", cfg.LogLevel)
	})
}

func TestLoad_EnvFiles(t *testing.T) {
	t.Run("loads variables from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env.test")
		require.NoError(t, os.WriteFile(path, []byte("ENVFILE_TEST_LANG=\"pt\"\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("ENVFILE_TEST_LANG") })

		var cfg appConfig
		require.NoError(t, config.Load(&cfg, config.WithPrefix("ENVFILE_TEST_"), config.WithEnvFiles(path)))
		assert.Equal(t, "pt", cfg.Lang)
	})

	t.Run("missing file", func(t *testing.T) {
		var cfg appConfig
		err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(t.TempDir(), "missing.env")))
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})
}
