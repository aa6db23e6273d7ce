// Package middlewares provides opt-in http.Handler middleware for
// applications running behind the gateway adapter.
//
// The adapter itself applies none of these; wrap your handler explicitly:
//
//	var h http.Handler = router
//	h = middlewares.Logging(log)(h)
//	h = middlewares.RequestID()(h)
//
//	lambda.Start(gateway.New(h))
//
// RequestID preserves upstream tracing headers (including the Lambda trace
// header) and exposes a logger extractor so every log line carries the ID.
// Recover is for applications that prefer a 500 response over a failed
// invocation when a handler panics. JWT guards routes with HS256 bearer
// tokens.
package middlewares
