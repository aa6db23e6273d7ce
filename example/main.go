package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-chi/chi/v5"

	"github.com/stackmelt/funcgate"
	"github.com/stackmelt/funcgate/middlewares"
	"github.com/stackmelt/funcgate/pkg/cookie"
	"github.com/stackmelt/funcgate/pkg/gateway"
	"github.com/stackmelt/funcgate/pkg/logger"
)

// A minimal chi application served through a Lambda function URL.
func main() {
	log := logger.New(
		logger.WithExtractors(middlewares.RequestIDExtractor()),
	)

	session := funcgate.NewCookie("session",
		cookie.WithSecrets(getEnv("SESSION_SECRET", "dev-secret-change-me-in-production")),
		cookie.WithHTTPOnly(true),
		cookie.WithSecure(true),
	)

	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		value, err := session.Parse(req.Header.Get("Cookie"))
		visits := 1.0
		if err == nil {
			if m, ok := value.(map[string]any); ok {
				if n, ok := m["visits"].(float64); ok {
					visits = n + 1
				}
			}
		}

		header, err := session.Serialize(map[string]any{"visits": visits})
		if err == nil {
			w.Header().Add("Set-Cookie", header)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"visits": visits})
	})

	r.Get("/favicon.ico", func(w http.ResponseWriter, req *http.Request) {
		// Binary responses are base64-encoded for the platform automatically.
		w.Header().Set("Content-Type", "image/vnd.microsoft.icon")
		_, _ = w.Write(favicon)
	})

	var h http.Handler = r
	h = middlewares.Logging(log)(h)
	h = middlewares.RequestID()(h)

	lambda.Start(funcgate.New(h, gateway.WithLogger(log)))
}

// favicon is a 1x1 transparent placeholder.
var favicon = []byte{
	0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x01,
	0x00, 0x00, 0x01, 0x00, 0x18, 0x00, 0x30, 0x00,
	0x00, 0x00, 0x16, 0x00, 0x00, 0x00,
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
