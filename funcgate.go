package funcgate

import (
	"net/http"

	"github.com/stackmelt/funcgate/pkg/cookie"
	"github.com/stackmelt/funcgate/pkg/gateway"
)

// Type aliases - public API
type (
	// HandlerFunc is the Lambda function URL handler signature produced
	// by New.
	HandlerFunc = gateway.HandlerFunc

	// GatewayOption configures the gateway adapter.
	GatewayOption = gateway.Option

	// Matcher classifies a media type as binary for base64 transport.
	Matcher = gateway.Matcher

	// Cookie is a named, reusable cookie codec.
	Cookie = cookie.Cookie

	// CookieOption configures a cookie codec.
	CookieOption = cookie.Option

	// Signer signs and verifies cookie values.
	Signer = cookie.Signer
)

// New wraps an http.Handler as a Lambda function URL handler.
func New(h http.Handler, opts ...GatewayOption) HandlerFunc {
	return gateway.New(h, opts...)
}

// NewCookie creates a named cookie codec.
func NewCookie(name string, opts ...CookieOption) *Cookie {
	return cookie.New(name, opts...)
}

// IsCookie reports whether v is a cookie codec, by capability.
func IsCookie(v any) bool {
	return cookie.IsCookie(v)
}
