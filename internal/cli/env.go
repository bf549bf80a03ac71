package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/checkkit/pkg/config"
	"github.com/dmitrymomot/checkkit/pkg/i18n"
	"github.com/dmitrymomot/checkkit/pkg/logger"
	"github.com/dmitrymomot/checkkit/pkg/validator"
)

// Settings are read from CHECKKIT_* environment variables and .env files.
type Settings struct {
	LogLevel     string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"text"`
	Lang         string `env:"LANG"`
	Translations string `env:"TRANSLATIONS"`
}

const envPrefix = "CHECKKIT_"

type (
	commandKey struct{}
	runtimeKey struct{}
)

// runtime holds what every subcommand needs after setup.
type runtime struct {
	settings Settings
	logger   *slog.Logger
	factory  *validator.Factory
	registry *validator.AssertionRegistry
}

// setup loads settings, builds the logger and installs the message
// translator. It runs before every subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	var s Settings
	if err := config.Load(&s, config.WithPrefix(envPrefix)); err != nil {
		return exitError(ExitUsage, "loading settings: %v", err)
	}

	level, err := logger.ParseLevel(s.LogLevel)
	if err != nil {
		return exitError(ExitUsage, "%sLOG_LEVEL: %v", envPrefix, err)
	}
	format, err := logger.ParseFormat(s.LogFormat)
	if err != nil {
		return exitError(ExitUsage, "%sLOG_FORMAT: %v", envPrefix, err)
	}

	log := logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithContextValue("command", commandKey{}),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, commandKey{}, cmd.Name())

	if err := installTranslator(ctx, s, log, level); err != nil {
		return err
	}

	registry := validator.DefaultAssertions()
	rt := &runtime{
		settings: s,
		logger:   log,
		registry: registry,
		factory:  validator.NewFactory(validator.NewLoader(registry, validator.WithLoaderLogger(log))),
	}
	cmd.SetContext(context.WithValue(ctx, runtimeKey{}, rt))
	return nil
}

func installTranslator(ctx context.Context, s Settings, log *slog.Logger, level slog.Level) error {
	if s.Translations == "" {
		validator.SetTranslator(nil)
		return nil
	}

	tr, err := i18n.NewTranslator(ctx,
		i18n.NewDirectoryAdapter(os.DirFS(s.Translations), "."),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(level <= slog.LevelDebug),
	)
	if err != nil {
		return exitError(ExitUsage, "loading translations from %s: %v", s.Translations, err)
	}

	lang := tr.Negotiate(s.Lang)
	validator.SetTranslator(tr.ForLanguage(lang))
	log.DebugContext(ctx, "translator installed", slog.String("lang", lang), slog.Any("supported", tr.SupportedLanguages()))
	return nil
}

func runtimeFrom(cmd *cobra.Command) *runtime {
	if ctx := cmd.Context(); ctx != nil {
		if rt, ok := ctx.Value(runtimeKey{}).(*runtime); ok {
			return rt
		}
	}
	registry := validator.DefaultAssertions()
	return &runtime{
		logger:   logger.Discard(),
		registry: registry,
		factory:  validator.NewFactory(validator.NewLoader(registry)),
	}
}
