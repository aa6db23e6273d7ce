package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration settings.
type SentryConfig struct {
	DSN         string
	Environment string
	// MinLevel decides which records reach Sentry as logs; errors always
	// create issues.
	MinLevel slog.Level
}

// NewWithSentry creates a logger that writes JSON to stdout and mirrors
// warnings and errors to Sentry. An empty DSN or a failed SDK init falls
// back to stdout only, so local development needs no configuration.
func NewWithSentry(cfg SentryConfig, opts ...Option) *slog.Logger {
	lcfg := &config{
		output: os.Stdout,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(lcfg)
	}

	stdout := slog.NewJSONHandler(lcfg.output, &slog.HandlerOptions{Level: lcfg.level})
	if cfg.DSN == "" {
		return slog.New(newContextHandler(stdout, lcfg.extractors))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("sentry init failed", slog.String("error", err.Error()))
		return slog.New(newContextHandler(stdout, lcfg.extractors))
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	combined := newFanoutHandler(stdout, sentryHandler)
	return slog.New(newContextHandler(combined, lcfg.extractors))
}
