package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

type options struct {
	prefix      string
	files       []string
	environment map[string]string
}

// Option configures Load.
type Option func(*options)

// WithPrefix prepends prefix to every variable name, so a field tagged
// `env:"LANG"` is read from CHECKKIT_LANG with prefix "CHECKKIT_".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvFiles loads the given dotenv files before parsing. Variables that
// are already set are not overridden. Unlike the default .env file, the
// files must exist.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) {
		o.files = append(o.files, paths...)
	}
}

// WithEnvironment parses vars instead of the process environment.
// Dotenv files are still loaded into the process environment but not read.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) {
		o.environment = vars
	}
}

// Load fills v from environment variables according to its `env` struct tags.
// The .env file of the working directory is loaded once if present.
//
// Example:
//
//	type Config struct {
//		Lang     string `env:"LANG" envDefault:"en"`
//		LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithPrefix("CHECKKIT_")); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	defaultEnvLoaded.Do(func() {
		// The default .env file is optional.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if len(o.files) > 0 {
		if err := godotenv.Load(o.files...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
