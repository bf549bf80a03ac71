// Package logger builds slog loggers from functional options.
//
// New defaults to text output on stderr at warn level, which keeps stdout
// free for command results. ParseLevel and ParseFormat turn configuration
// strings into options, and the helpers in attr.go keep attribute keys
// consistent:
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatJSON),
//		logger.WithContextValue("command", commandKey{}),
//	)
//	log.DebugContext(ctx, "validated", logger.Validator("email"), logger.Valid(false),
//		logger.Messages(res.Messages()))
package logger
