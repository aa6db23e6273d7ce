// Package cookie provides named cookie codecs with optional value signing.
//
// A codec is created once and reused; it holds configuration only, never a
// value, so a single handle is safe across concurrent requests. Values are
// JSON-encoded and base64-wrapped on the wire, and optionally signed with
// HMAC-SHA256.
//
// # Basic Usage
//
//	session := cookie.New("session",
//		cookie.WithPath("/"),
//		cookie.WithHTTPOnly(true),
//	)
//
//	header, err := session.Serialize(map[string]any{"user": "u_123"})
//	// header is a Set-Cookie string: session=...; Path=/; HttpOnly
//
//	value, err := session.Parse(r.Header.Get("Cookie"))
//	// value is the decoded JSON value, or err is [ErrNotFound]
//
// # Signing and Secret Rotation
//
// Configure one or more secrets to sign values. The first secret signs all
// new cookies; every secret is tried during verification, oldest last, so
// rotating a secret in at the front keeps previously issued cookies valid:
//
//	session := cookie.New("session",
//		cookie.WithSecrets("new-secret", "old-secret"),
//	)
//
// A value that fails verification against every secret parses as
// [ErrNotFound]; tampering is indistinguishable from absence.
//
// # Expiry
//
// [Cookie.Expires] derives the effective expiry on each call: a max-age set
// with [WithMaxAge] yields now+maxAge and always wins over a static
// [WithExpires] time.
//
// # Custom Signers
//
// The signing algorithm is an injected capability. Any [Signer] whose
// Sign/Unsign pair round-trips can replace the default [HMACSigner] via
// [WithSigner] without touching parse or serialize behavior.
package cookie
