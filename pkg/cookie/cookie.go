package cookie

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Errors.
var (
	// ErrNotFound is returned when the cookie is absent from the header,
	// or when its signature does not verify against any configured secret.
	// Callers cannot distinguish a tampered cookie from a missing one.
	ErrNotFound = errors.New("cookie: not found")
)

// Cookie is a named, reusable codec for a single cookie. It holds only
// configuration and is safe for concurrent use; values are never stored
// on the handle.
type Cookie struct {
	name      string
	secrets   []string
	signer    Signer
	path      string
	domain    string
	maxAge    time.Duration
	maxAgeSet bool
	expires   time.Time
	secure    bool
	httpOnly  bool
	sameSite  http.SameSite
}

// Option configures a Cookie.
type Option func(*Cookie)

// New creates a named cookie codec with the given options.
func New(name string, opts ...Option) *Cookie {
	c := &Cookie{
		name:   name,
		path:   "/",
		signer: HMACSigner{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSecrets sets the ordered list of signing secrets. The first secret
// signs all new values; every secret is tried during verification, so old
// secrets stay valid for reading after rotation.
func WithSecrets(secrets ...string) Option {
	return func(c *Cookie) {
		c.secrets = secrets
	}
}

// WithSigner replaces the default HMAC-SHA256 signer.
func WithSigner(s Signer) Option {
	return func(c *Cookie) {
		if s != nil {
			c.signer = s
		}
	}
}

// WithPath sets the cookie path (default "/").
func WithPath(path string) Option {
	return func(c *Cookie) {
		c.path = path
	}
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(c *Cookie) {
		c.domain = domain
	}
}

// WithMaxAge sets the cookie lifetime. When set, it takes precedence over
// a static expiry configured with WithExpires.
func WithMaxAge(d time.Duration) Option {
	return func(c *Cookie) {
		c.maxAge = d
		c.maxAgeSet = true
	}
}

// WithExpires sets a static expiry time.
func WithExpires(t time.Time) Option {
	return func(c *Cookie) {
		c.expires = t
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(c *Cookie) {
		c.secure = secure
	}
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(c *Cookie) {
		c.httpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(c *Cookie) {
		c.sameSite = ss
	}
}

// with returns the receiver when opts is empty, otherwise a shallow copy
// with opts applied. The handle itself is never mutated.
func (c *Cookie) with(opts []Option) *Cookie {
	if len(opts) == 0 {
		return c
	}
	merged := *c
	for _, opt := range opts {
		opt(&merged)
	}
	return &merged
}

// Name returns the cookie name.
func (c *Cookie) Name() string {
	return c.name
}

// IsSigned reports whether values are signed, which is the case exactly
// when at least one secret is configured.
func (c *Cookie) IsSigned() bool {
	return len(c.secrets) > 0
}

// Expires returns the effective expiry at the time of the call. A configured
// max-age wins over a static expiry; with neither set, the zero time is
// returned and the cookie is a session cookie.
func (c *Cookie) Expires() time.Time {
	if c.maxAgeSet {
		return time.Now().Add(c.maxAge)
	}
	return c.expires
}

// Parse extracts and decodes this cookie's value from a Cookie request
// header. It returns ErrNotFound when the header is empty, the cookie is
// absent, or (for signed cookies) no configured secret verifies the value.
// An empty raw value is returned as "" without decoding. Per-call options
// are merged over the handle's configuration for this call only.
func (c *Cookie) Parse(cookieHeader string, opts ...Option) (any, error) {
	c = c.with(opts)
	if cookieHeader == "" {
		return nil, ErrNotFound
	}

	// Lenient pair parsing: unknown or attribute-style segments are skipped,
	// matching browser behavior for malformed headers.
	r := http.Request{Header: http.Header{"Cookie": []string{cookieHeader}}}
	raw, err := r.Cookie(c.name)
	if err != nil {
		return nil, ErrNotFound
	}
	if raw.Value == "" {
		return "", nil
	}

	return c.decode(raw.Value)
}

// Serialize encodes the value and renders a Set-Cookie header string with
// this codec's attributes. The empty string is serialized verbatim, skipping
// encoding and signing, so that Parse round-trips it back to "". Per-call
// options are merged over the handle's configuration for this call only.
func (c *Cookie) Serialize(value any, opts ...Option) (string, error) {
	c = c.with(opts)
	encoded := ""
	if s, ok := value.(string); !ok || s != "" {
		var err error
		encoded, err = c.encode(value)
		if err != nil {
			return "", err
		}
	}

	hc := &http.Cookie{
		Name:     c.name,
		Value:    encoded,
		Path:     c.path,
		Domain:   c.domain,
		Expires:  c.Expires(),
		Secure:   c.secure,
		HttpOnly: c.httpOnly,
		SameSite: c.sameSite,
	}
	if c.maxAgeSet {
		hc.MaxAge = int(c.maxAge / time.Second)
	}
	if err := hc.Valid(); err != nil {
		return "", err
	}
	return hc.String(), nil
}

// encode marshals the value to JSON, base64-encodes it, and signs it with
// the first (newest) secret when secrets are configured.
func (c *Cookie) encode(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}

	encoded := base64.RawURLEncoding.EncodeToString(data)
	if !c.IsSigned() {
		return encoded, nil
	}
	return c.signer.Sign(encoded, c.secrets[0])
}

// decode reverses encode. Signed values are verified against each secret in
// order; the first match wins. Unverifiable values yield ErrNotFound. A
// verified (or unsigned) value that fails base64 or JSON decoding yields an
// empty map instead of an error.
func (c *Cookie) decode(raw string) (any, error) {
	if !c.IsSigned() {
		return decodeValue(raw), nil
	}

	for _, secret := range c.secrets {
		if data, ok := c.signer.Unsign(raw, secret); ok {
			return decodeValue(data), nil
		}
	}
	return nil, ErrNotFound
}

// decodeValue recovers the JSON value from its base64 form. Corrupt data
// decodes to an empty map rather than an error.
func decodeValue(encoded string) any {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return map[string]any{}
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return map[string]any{}
	}
	return value
}

// Codec is the capability surface of a cookie handle.
type Codec interface {
	Name() string
	IsSigned() bool
	Parse(cookieHeader string, opts ...Option) (any, error)
	Serialize(value any, opts ...Option) (string, error)
}

// IsCookie reports whether v satisfies the cookie codec capability surface.
// It is a structural check for integration boundaries, not a nominal one.
func IsCookie(v any) bool {
	_, ok := v.(Codec)
	return ok
}
