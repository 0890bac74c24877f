package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOTelInitialization(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:    "nucdash-test",
		ServiceVersion: "test",
		Environment:    "test",
		TraceExporter:  "stdout",
		EnableMetrics:  true,
		EnableTracing:  true,
		SampleRatio:    1.0,
	}, discardLogger())
	require.NoError(t, err)

	assert.NotNil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.PrometheusHTTP)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelInitialization_Disabled(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{ServiceName: "nucdash-test"}, discardLogger())
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)

	metrics, err := CreateDashboardMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordExport(context.Background(), "global", "csv")
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestOTelInitialization_UnsupportedExporter(t *testing.T) {
	_, err := InitializeOTel(&OTelConfig{EnableTracing: true, TraceExporter: "zipkin"}, discardLogger())
	assert.Error(t, err)
}

func TestTraceCorrelation(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:   "nucdash-test",
		EnableTracing: true,
		TraceExporter: "stdout",
		SampleRatio:   1.0,
	}, discardLogger())
	require.NoError(t, err)
	defer func() { _ = providers.Shutdown(context.Background()) }()

	ctx, span := otel.Tracer("test").Start(context.Background(), "test-operation")
	defer span.End()

	assert.Equal(t, span.SpanContext().TraceID().String(), TraceIDFromContext(ctx))
	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestDashboardMetrics_PrometheusExposition(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:    "nucdash-test",
		ServiceVersion: "test",
		EnableMetrics:  true,
	}, discardLogger())
	require.NoError(t, err)
	defer func() { _ = providers.Shutdown(context.Background()) }()

	metrics, err := CreateDashboardMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordPipelineRun(ctx, 120*time.Millisecond, map[string]int{"global": 10, "local": 4}, nil)
	metrics.RecordPipelineRun(ctx, time.Millisecond, nil, errors.New("boom"))
	metrics.RecordChartRender(ctx, "global-mass-number", "png", 30*time.Millisecond, nil)
	metrics.RecordExport(ctx, "local", "csv")

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "pipeline_runs_total")
	assert.Contains(t, body, "pipeline_errors_total")
	assert.Contains(t, body, "pipeline_rows")
	assert.Contains(t, body, `view="local"`)
	assert.Contains(t, body, "chart_render_duration_seconds")
	assert.Contains(t, body, "exports_total")
	assert.Contains(t, body, "go_goroutines")
}

func TestDashboardMetrics_NilSafe(t *testing.T) {
	var m *DashboardMetrics
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordPipelineRun(ctx, time.Second, nil, nil)
		m.RecordChartRender(ctx, "x", "png", time.Second, nil)
		m.RecordExport(ctx, "global", "csv")
	})
}
