package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ContextExtractor pulls a request-scoped attribute out of a context.
// Extractors run on every log call so fresh values (request IDs, user IDs)
// land on each record.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// config collects logger construction options.
type config struct {
	output     io.Writer
	level      slog.Level
	extractors []ContextExtractor
}

// Option configures the logger factory.
type Option func(*config)

// WithLevel sets the minimum log level (default Info).
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithOutput redirects log output (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithExtractors adds context extractors. Nil extractors are dropped.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// New creates a JSON slog logger.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		output: os.Stdout,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := slog.NewJSONHandler(cfg.output, &slog.HandlerOptions{Level: cfg.level})
	return slog.New(newContextHandler(handler, cfg.extractors))
}

// NewNop creates a logger that discards everything. Use as a default when
// logging is not configured.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
