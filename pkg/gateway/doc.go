// Package gateway runs standard http.Handler applications behind AWS Lambda
// function URLs.
//
// The adapter is a stateless pipeline: event in, *http.Request built,
// handler invoked, captured response converted back to the function URL
// result shape. Cookies are moved to the result's cookie list (the platform
// transports Set-Cookie out-of-band), and bodies whose Content-Type appears
// in a fixed binary allow-list are base64-encoded.
//
//	func main() {
//		r := chi.NewRouter()
//		r.Get("/", home)
//
//		lambda.Start(gateway.New(r,
//			gateway.WithLogger(logger.New()),
//		))
//	}
//
// The adapter does not intercept handler errors or panics; they surface as
// failed invocations through the runtime's own path. It also implements no
// timeouts: the invocation context carries the platform deadline, and
// handlers that care should watch ctx.Done().
//
// # Header Flattening
//
// The result's header mapping holds one value per name. Repeated response
// header fields are joined with ", "; this is a deterministic policy, but
// fields whose syntax does not permit list combination should simply not be
// repeated by handlers. Set-Cookie is exempt via the cookie list.
package gateway
