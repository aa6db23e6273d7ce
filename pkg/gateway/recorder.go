package gateway

import (
	"bytes"
	"net/http"
)

// Recorder is an in-memory http.ResponseWriter. It captures the status,
// headers, and body of one handler invocation so they can be converted to
// the gateway result shape. A Recorder serves a single invocation and is
// not safe for concurrent writers.
type Recorder struct {
	header  http.Header
	body    bytes.Buffer
	status  int
	written bool
}

// NewRecorder creates an empty Recorder with status 200.
func NewRecorder() *Recorder {
	return &Recorder{
		header: make(http.Header),
		status: http.StatusOK,
	}
}

// Header returns the response header map.
func (r *Recorder) Header() http.Header {
	return r.header
}

// WriteHeader records the status code. Subsequent calls are ignored,
// matching net/http semantics.
func (r *Recorder) WriteHeader(code int) {
	if r.written {
		return
	}
	r.written = true
	r.status = code
}

// Write appends to the captured body, recording an implicit 200 on first
// write.
func (r *Recorder) Write(b []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	return r.body.Write(b)
}

// Flush implements http.Flusher as a no-op; the body is buffered until the
// invocation completes.
func (r *Recorder) Flush() {}

// Status returns the recorded status code.
func (r *Recorder) Status() int {
	return r.status
}

// Body returns the captured body bytes.
func (r *Recorder) Body() []byte {
	return r.body.Bytes()
}

// Size returns the number of body bytes written.
func (r *Recorder) Size() int64 {
	return int64(r.body.Len())
}

// Written reports whether the handler produced a response.
func (r *Recorder) Written() bool {
	return r.written
}
