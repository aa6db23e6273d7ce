package middlewares_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackmelt/funcgate/middlewares"
	"github.com/stackmelt/funcgate/pkg/logger"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	h := middlewares.Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("queued"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/jobs", nil))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "request", rec["msg"])
	require.Equal(t, "POST", rec["method"])
	require.Equal(t, "/jobs", rec["path"])
	require.Equal(t, float64(http.StatusAccepted), rec["status"])
	require.Equal(t, float64(6), rec["bytes"])
}
