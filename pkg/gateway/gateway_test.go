package gateway_test

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"

	"github.com/stackmelt/funcgate/pkg/gateway"
)

func urlEvent(method, rawPath, rawQuery string) events.LambdaFunctionURLRequest {
	return events.LambdaFunctionURLRequest{
		RawPath:        rawPath,
		RawQueryString: rawQuery,
		Headers:        map[string]string{"host": "x.test"},
		RequestContext: events.LambdaFunctionURLRequestContext{
			HTTP: events.LambdaFunctionURLRequestContextHTTPDescription{
				Method: method,
				Path:   rawPath,
			},
		},
	}
}

func TestRequestConstruction(t *testing.T) {
	t.Parallel()

	t.Run("url from host header, path and query", func(t *testing.T) {
		t.Parallel()

		var gotURL, gotMethod string
		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.String()
			gotMethod = r.Method
		}))

		_, err := h(context.Background(), urlEvent(http.MethodGet, "/foo", "a=1"))
		require.NoError(t, err)
		require.Equal(t, "https://x.test/foo?a=1", gotURL)
		require.Equal(t, http.MethodGet, gotMethod)
	})

	t.Run("forwarded host wins over host header", func(t *testing.T) {
		t.Parallel()

		event := urlEvent(http.MethodGet, "/", "")
		event.Headers["x-forwarded-host"] = "public.example.com"

		var gotHost string
		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotHost = r.Host
		}))

		_, err := h(context.Background(), event)
		require.NoError(t, err)
		require.Equal(t, "public.example.com", gotHost)
	})

	t.Run("empty query adds no separator", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.String()
		}))

		_, err := h(context.Background(), urlEvent(http.MethodGet, "/foo", ""))
		require.NoError(t, err)
		require.Equal(t, "https://x.test/foo", gotURL)
	})

	t.Run("headers copied, empty values skipped", func(t *testing.T) {
		t.Parallel()

		event := urlEvent(http.MethodGet, "/", "")
		event.Headers["x-custom"] = "yes"
		event.Headers["x-empty"] = ""

		var got http.Header
		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
		}))

		_, err := h(context.Background(), event)
		require.NoError(t, err)
		require.Equal(t, "yes", got.Get("X-Custom"))
		_, present := got["X-Empty"]
		require.False(t, present)
	})

	t.Run("event cookies joined into one header", func(t *testing.T) {
		t.Parallel()

		event := urlEvent(http.MethodGet, "/", "")
		event.Cookies = []string{"a=1", "b=2"}

		var gotCookie string
		var gotA, gotB *http.Cookie
		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCookie = r.Header.Get("Cookie")
			gotA, _ = r.Cookie("a")
			gotB, _ = r.Cookie("b")
		}))

		_, err := h(context.Background(), event)
		require.NoError(t, err)
		require.Equal(t, "a=1; b=2", gotCookie)
		require.NotNil(t, gotA)
		require.Equal(t, "1", gotA.Value)
		require.NotNil(t, gotB)
		require.Equal(t, "2", gotB.Value)
	})

	t.Run("base64 body decoded for handler", func(t *testing.T) {
		t.Parallel()

		event := urlEvent(http.MethodPost, "/submit", "")
		event.Body = base64.StdEncoding.EncodeToString([]byte("name=gopher"))
		event.IsBase64Encoded = true

		var gotBody []byte
		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = io.ReadAll(r.Body)
		}))

		_, err := h(context.Background(), event)
		require.NoError(t, err)
		require.Equal(t, "name=gopher", string(gotBody))
	})

	t.Run("plain body passed verbatim", func(t *testing.T) {
		t.Parallel()

		event := urlEvent(http.MethodPost, "/submit", "")
		event.Body = `{"k":"v"}`

		var gotBody []byte
		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = io.ReadAll(r.Body)
		}))

		_, err := h(context.Background(), event)
		require.NoError(t, err)
		require.Equal(t, `{"k":"v"}`, string(gotBody))
	})

	t.Run("invalid base64 body fails the invocation", func(t *testing.T) {
		t.Parallel()

		event := urlEvent(http.MethodPost, "/submit", "")
		event.Body = "%%% not base64 %%%"
		event.IsBase64Encoded = true

		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler invoked with undecodable body")
		}))

		_, err := h(context.Background(), event)
		require.Error(t, err)
	})

	t.Run("base path stripped before routing", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
		}), gateway.WithBasePath("/prod"))

		_, err := h(context.Background(), urlEvent(http.MethodGet, "/prod/users", ""))
		require.NoError(t, err)
		require.Equal(t, "/users", gotPath)
	})
}

func TestResponseConversion(t *testing.T) {
	t.Parallel()

	t.Run("status, headers and text body", func(t *testing.T) {
		t.Parallel()

		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))

		resp, err := h(context.Background(), urlEvent(http.MethodPost, "/", ""))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.Equal(t, "application/json", resp.Headers["Content-Type"])
		require.Equal(t, `{"ok":true}`, resp.Body)
		require.False(t, resp.IsBase64Encoded)
	})

	t.Run("set-cookie headers move to cookie list", func(t *testing.T) {
		t.Parallel()

		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "a", Value: "1", Path: "/"})
			http.SetCookie(w, &http.Cookie{Name: "b", Value: "2", Path: "/"})
			http.SetCookie(w, &http.Cookie{Name: "c", Value: "3", Path: "/"})
		}))

		resp, err := h(context.Background(), urlEvent(http.MethodGet, "/", ""))
		require.NoError(t, err)
		require.Len(t, resp.Cookies, 3)
		for name := range resp.Headers {
			require.False(t, strings.EqualFold(name, "Set-Cookie"), "header %q survived extraction", name)
		}
	})

	t.Run("binary content type encodes body as base64", func(t *testing.T) {
		t.Parallel()

		raw := []byte{0x89, 0x50, 0x4E, 0x47, 0x00, 0x01}
		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(raw)
		}))

		resp, err := h(context.Background(), urlEvent(http.MethodGet, "/logo.png", ""))
		require.NoError(t, err)
		require.True(t, resp.IsBase64Encoded)

		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		require.NoError(t, err)
		require.Equal(t, raw, decoded)
	})

	t.Run("binary matching ignores content-type parameters", func(t *testing.T) {
		t.Parallel()

		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf; name=report.pdf")
			_, _ = w.Write([]byte("%PDF-1.7"))
		}))

		resp, err := h(context.Background(), urlEvent(http.MethodGet, "/report", ""))
		require.NoError(t, err)
		require.True(t, resp.IsBase64Encoded)
	})

	t.Run("repeated headers joined deterministically", func(t *testing.T) {
		t.Parallel()

		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept")
			w.Header().Add("Vary", "Cookie")
		}))

		resp, err := h(context.Background(), urlEvent(http.MethodGet, "/", ""))
		require.NoError(t, err)
		require.Equal(t, "Accept, Cookie", resp.Headers["Vary"])
	})

	t.Run("canceled invocation forces connection close", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cancel()
			<-r.Context().Done()
		}))

		resp, err := h(ctx, urlEvent(http.MethodGet, "/slow", ""))
		require.NoError(t, err)
		require.Equal(t, "close", resp.Headers["Connection"])
	})

	t.Run("empty handler yields 200 with empty body", func(t *testing.T) {
		t.Parallel()

		h := gateway.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		resp, err := h(context.Background(), urlEvent(http.MethodGet, "/", ""))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Empty(t, resp.Body)
		require.False(t, resp.IsBase64Encoded)
	})
}
