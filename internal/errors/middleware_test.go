package errors

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"nucdash/internal/shared/testutil"
)

func TestErrorMiddleware_LogLevels(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel slog.Level
	}{
		{name: "success", status: http.StatusOK, wantLevel: slog.LevelInfo},
		{name: "client error", status: http.StatusNotFound, wantLevel: slog.LevelWarn},
		{name: "server error", status: http.StatusServiceUnavailable, wantLevel: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			m := NewErrorMiddleware(NewErrorHandler(logger, false), logger)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			rec := httptest.NewRecorder()
			m.Handler(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/views?x=1", nil))

			assert.Equal(t, tt.status, rec.Code)
			testutil.AssertLogContains(t, logs, tt.wantLevel, "http request")
			testutil.AssertLogAttr(t, logs, "query", "x=1")
		})
	}
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	m := NewErrorMiddleware(NewErrorHandler(logger, false), logger)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("chart exploded")
	})
	rec := httptest.NewRecorder()
	m.Handler(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/charts/x/image.png", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), TypeInternal)
	assert.NotContains(t, rec.Body.String(), "chart exploded")
	testutil.AssertLogContains(t, logs, slog.LevelError, "panic recovered")
}

func TestRecoveryMiddleware(t *testing.T) {
	h := NewErrorHandler(nil, true)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	RecoveryMiddleware(h)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "boom", "panic value is exposed when stacks are enabled")
}
