package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Errors.
var (
	ErrMissingToken = errors.New("middlewares: missing bearer token")
	ErrInvalidToken = errors.New("middlewares: invalid token")
)

// claimsKey is the context key for validated JWT claims.
type claimsKey struct{}

// JWTConfig configures the JWT middleware.
type JWTConfig struct {
	// OnError renders the rejection; defaults to a plain 401.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// JWTOption configures JWTConfig.
type JWTOption func(*JWTConfig)

// WithJWTErrorHandler sets a custom rejection handler.
func WithJWTErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) JWTOption {
	return func(cfg *JWTConfig) {
		cfg.OnError = fn
	}
}

// JWT validates an HS256 bearer token from the Authorization header and
// stores its claims in the request context. Requests without a valid token
// are rejected before reaching the handler.
func JWT(secret string, opts ...JWTOption) func(http.Handler) http.Handler {
	cfg := &JWTConfig{
		OnError: func(w http.ResponseWriter, r *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				cfg.OnError(w, r, ErrMissingToken)
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, ErrInvalidToken
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				cfg.OnError(w, r, ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims extracts validated JWT claims from a context. Returns nil when
// the middleware did not run.
func GetClaims(ctx context.Context) jwt.MapClaims {
	if v, ok := ctx.Value(claimsKey{}).(jwt.MapClaims); ok {
		return v
	}
	return nil
}
