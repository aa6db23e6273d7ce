// Package logger builds slog loggers for funcgate services.
//
// The factory produces JSON loggers with optional context-extracted
// attributes and optional Sentry mirroring for warnings and errors.
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithExtractors(middlewares.RequestIDExtractor()),
//	)
//
// With Sentry, an empty DSN degrades to stdout-only logging so local runs
// need no configuration:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//	})
//
// Extractors run per log call, so request-scoped values such as request IDs
// appear on every record emitted with the request's context.
package logger
