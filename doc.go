// Package funcgate runs standard net/http applications behind AWS Lambda
// function URLs.
//
// The toolkit has three independent parts: a gateway adapter that translates
// function URL events to *http.Request values and handler responses back to
// the platform's result shape, a cookie codec for signed session-style
// values, and a build-time tool that mirrors documentation pages into GitHub
// Discussions.
//
// # Quick Start
//
// Wrap any http.Handler and hand it to the Lambda runtime:
//
//	func main() {
//	    r := chi.NewRouter()
//	    r.Get("/", home)
//
//	    lambda.Start(funcgate.New(r))
//	}
//
// The adapter is stateless: each invocation builds a fresh request, runs the
// handler, and converts the captured response. Set-Cookie headers move to
// the platform's cookie list, and bodies with a binary Content-Type are
// base64-encoded per a fixed allow-list.
//
// # Cookies
//
// Cookie codecs are configured once and reused across invocations:
//
//	session := funcgate.NewCookie("session",
//	    cookie.WithSecrets(os.Getenv("SESSION_SECRET")),
//	    cookie.WithHTTPOnly(true),
//	)
//
// See the pkg/gateway, pkg/cookie, and pkg/docsync package docs for the
// full surfaces.
package funcgate
