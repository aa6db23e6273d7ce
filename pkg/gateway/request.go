package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// NewRequest builds a standard *http.Request from a function URL event.
// The URL is reconstructed from the forwarded host (falling back to the host
// header, then the function URL domain), the raw path, and the raw query
// string. Event cookies are joined and appended as one Cookie header in
// addition to any header-level cookies. A base64-encoded body is decoded
// before being handed to the handler.
//
// The request carries ctx, so handlers observe the invocation's
// cancellation (runtime timeout or client disconnect).
func NewRequest(ctx context.Context, event events.LambdaFunctionURLRequest) (*http.Request, error) {
	host := eventHeader(event.Headers, "x-forwarded-host")
	if host == "" {
		host = eventHeader(event.Headers, "host")
	}
	if host == "" {
		host = event.RequestContext.DomainName
	}

	rawURL := "https://" + host + event.RawPath
	if event.RawQueryString != "" {
		rawURL += "?" + event.RawQueryString
	}

	method := event.RequestContext.HTTP.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if event.Body != "" {
		if event.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(event.Body)
			if err != nil {
				return nil, fmt.Errorf("gateway: decode request body: %w", err)
			}
			body = bytes.NewReader(decoded)
		} else {
			body = strings.NewReader(event.Body)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}

	for name, value := range event.Headers {
		if value == "" {
			continue
		}
		req.Header.Add(name, value)
	}
	if len(event.Cookies) > 0 {
		req.Header.Add("Cookie", strings.Join(event.Cookies, "; "))
	}

	req.RemoteAddr = event.RequestContext.HTTP.SourceIP
	return req, nil
}

// eventHeader does a case-insensitive lookup in the event's header map.
// Function URLs lowercase header names, but that is convention, not contract.
func eventHeader(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
