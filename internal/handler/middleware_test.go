package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/feedback-service/internal/handler"
)

func newMiddlewareEngine(buf *bytes.Buffer, origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handler.Middleware(zerolog.New(buf), origins)...)
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	return r
}

func TestRequestID_GeneratedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	w := do(newMiddlewareEngine(&buf, nil), http.MethodGet, "/ok", "")

	id := w.Header().Get(handler.RequestIDHeader)
	require.NotEmpty(t, id)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, id, line["request_id"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/ok", line["path"])
	assert.EqualValues(t, 200, line["status"])
	assert.Equal(t, "request completed", line["message"])
}

func TestRequestID_Propagated(t *testing.T) {
	var buf bytes.Buffer
	r := newMiddlewareEngine(&buf, nil)
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(handler.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(handler.RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
}

func TestRecovery_WritesGenericEnvelope(t *testing.T) {
	var buf bytes.Buffer
	w := do(newMiddlewareEngine(&buf, nil), http.MethodGet, "/panic", "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal server error", body["message"])
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestRequestLogger_LogsRecoveredPanic(t *testing.T) {
	var buf bytes.Buffer
	newMiddlewareEngine(&buf, nil).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/panic", nil))

	var completed map[string]any
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var line map[string]any
		require.NoError(t, json.Unmarshal(raw, &line), string(raw))
		if line["message"] == "request completed" {
			completed = line
		}
	}
	require.NotNil(t, completed, "request line missing: %s", buf.String())
	assert.EqualValues(t, 500, completed["status"])
	assert.Equal(t, "error", completed["level"])
	assert.Equal(t, "/panic", completed["path"])
}

func TestCORS(t *testing.T) {
	cases := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"wildcard", []string{"*"}, "https://a.example", "*"},
		{"listed origin echoed", []string{"https://a.example"}, "https://a.example", "https://a.example"},
		{"unlisted origin", []string{"https://a.example"}, "https://b.example", ""},
		{"no origin header", []string{"*"}, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			req := httptest.NewRequest(http.MethodGet, "/ok", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			w := httptest.NewRecorder()
			newMiddlewareEngine(&buf, tc.origins).ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.want, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	var buf bytes.Buffer
	req := httptest.NewRequest(http.MethodOptions, "/ok", nil)
	req.Header.Set("Origin", "https://a.example")
	w := httptest.NewRecorder()
	newMiddlewareEngine(&buf, []string{"*"}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}
