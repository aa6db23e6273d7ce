package gateway

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// HandlerFunc is the signature the Lambda runtime expects for function URL
// invocations. Pass the result of New to lambda.Start.
type HandlerFunc func(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error)

// Adapter converts function URL events into *http.Request values, runs a
// standard http.Handler, and converts the captured response back into the
// function URL result shape. It holds configuration only; every invocation
// is independent.
type Adapter struct {
	handler  http.Handler
	logger   *slog.Logger
	binary   []Matcher
	basePath string
}

// Option configures the Adapter.
type Option func(*Adapter)

// WithLogger enables per-invocation request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithBinaryTypes replaces the default binary content-type table.
func WithBinaryTypes(matchers ...Matcher) Option {
	return func(a *Adapter) {
		a.binary = matchers
	}
}

// WithBasePath strips a deployment prefix (e.g. a stage path) from the
// event's raw path before routing.
func WithBasePath(prefix string) Option {
	return func(a *Adapter) {
		a.basePath = strings.TrimSuffix(prefix, "/")
	}
}

// New wraps an http.Handler as a Lambda function URL handler.
//
//	func main() {
//		lambda.Start(gateway.New(router))
//	}
//
// Handler panics are not intercepted; they propagate to the runtime as a
// failed invocation.
func New(h http.Handler, opts ...Option) HandlerFunc {
	a := &Adapter{
		handler: h,
		binary:  DefaultBinaryTypes,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a.Invoke
}

// Invoke handles a single function URL event.
func (a *Adapter) Invoke(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	if a.basePath != "" && strings.HasPrefix(event.RawPath, a.basePath) {
		event.RawPath = strings.TrimPrefix(event.RawPath, a.basePath)
		if event.RawPath == "" {
			event.RawPath = "/"
		}
	}

	req, err := NewRequest(ctx, event)
	if err != nil {
		return events.LambdaFunctionURLResponse{}, err
	}

	rec := NewRecorder()
	start := time.Now()
	a.handler.ServeHTTP(rec, req)

	resp := a.toResponse(ctx, rec)

	if a.logger != nil {
		a.logger.InfoContext(ctx, "request completed",
			slog.String("method", req.Method),
			slog.String("path", event.RawPath),
			slog.Int("status", resp.StatusCode),
			slog.Int64("bytes", rec.Size()),
			slog.Duration("duration", time.Since(start)),
			slog.Bool("base64", resp.IsBase64Encoded),
		)
	}

	return resp, nil
}
