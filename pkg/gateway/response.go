package gateway

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// toResponse converts a captured handler response into the function URL
// result shape.
func (a *Adapter) toResponse(ctx context.Context, rec *Recorder) events.LambdaFunctionURLResponse {
	header := rec.Header().Clone()
	if header == nil {
		header = make(http.Header)
	}

	// The platform transports cookies out-of-band from other headers, so
	// every Set-Cookie value moves to the result's cookie list.
	cookies := extractSetCookies(header)

	// Caller aborted mid-invocation.
	if ctx.Err() != nil {
		header.Set("Connection", "close")
	}

	resp := events.LambdaFunctionURLResponse{
		StatusCode: rec.Status(),
		Headers:    flattenHeaders(header),
		Cookies:    cookies,
	}

	if IsBinaryType(a.binary, header.Get("Content-Type")) {
		resp.Body = base64.StdEncoding.EncodeToString(rec.Body())
		resp.IsBase64Encoded = true
	} else {
		resp.Body = string(rec.Body())
	}

	return resp
}

// extractSetCookies removes every Set-Cookie entry from the header,
// case-insensitively, and returns the values in header order.
func extractSetCookies(header http.Header) []string {
	var cookies []string
	for name, values := range header {
		if strings.EqualFold(name, "Set-Cookie") {
			cookies = append(cookies, values...)
			delete(header, name)
		}
	}
	return cookies
}

// flattenHeaders collapses a multi-value header map into the single-value
// mapping the platform expects. Repeated fields are joined with ", ", the
// standard field-combination rule, so no value is silently dropped.
func flattenHeaders(header http.Header) map[string]string {
	flat := make(map[string]string, len(header))
	for name, values := range header {
		flat[name] = strings.Join(values, ", ")
	}
	return flat
}
