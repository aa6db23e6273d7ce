package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/stackmelt/funcgate/middlewares"
)

const jwtSecret = "test-signing-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return signed
}

func TestJWT(t *testing.T) {
	t.Parallel()

	protected := func(t *testing.T, opts ...middlewares.JWTOption) (http.Handler, *jwt.MapClaims) {
		t.Helper()
		var got jwt.MapClaims
		h := middlewares.JWT(jwtSecret, opts...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = middlewares.GetClaims(r.Context())
		}))
		return h, &got
	}

	t.Run("valid token reaches handler with claims", func(t *testing.T) {
		t.Parallel()

		h, got := protected(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
			"sub": "u_123",
			"exp": time.Now().Add(time.Hour).Unix(),
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, *got)
		require.Equal(t, "u_123", (*got)["sub"])
	})

	t.Run("missing token rejected", func(t *testing.T) {
		t.Parallel()

		h, got := protected(t)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Nil(t, *got)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		t.Parallel()

		h, _ := protected(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
			"exp": time.Now().Add(-time.Hour).Unix(),
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		t.Parallel()

		var handlerRan bool
		h := middlewares.JWT("other-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerRan = true
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.False(t, handlerRan)
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()

		h, _ := protected(t, middlewares.WithJWTErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			w.WriteHeader(http.StatusForbidden)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}
