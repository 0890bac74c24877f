package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nucdash/internal/charts"
	"nucdash/internal/dataprocessing"
	apierrors "nucdash/internal/errors"
	"nucdash/internal/middleware"
	"nucdash/internal/services"
	"nucdash/internal/shared/testutil"
	"nucdash/pkg/contracts/domain"
)

func newRouter(t *testing.T, svc DashboardServiceInterface, health *services.HealthService) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	eh := apierrors.NewErrorHandler(logger, false)
	v := middleware.NewValidator()

	views := NewViewsHandler(svc, v, logger, eh)
	chartsHandler := NewChartsHandler(svc, v, logger, eh)

	r := chi.NewRouter()
	r.NotFound(eh.NotFound)
	r.Get("/", NewPageHandler(svc, "svg", logger, eh).ServeDashboard)
	r.Route("/api", func(r chi.Router) {
		if health != nil {
			hh := NewHealthHandler(health, logger)
			r.Mount("/health", hh.Routes())
			r.Get("/version", hh.Version)
		}
		r.Mount("/views", views.Routes())
		r.Get("/scaler", views.GetScaler)
		r.Get("/dataset", views.GetDataset)
		r.Mount("/charts", chartsHandler.Routes())
	})
	return r
}

func newDashboard(t *testing.T) *services.DashboardService {
	t.Helper()
	views, err := dataprocessing.Prepare(context.Background(), testutil.WriteNuclideCSV(t, testutil.NuclideCSV()), dataprocessing.DefaultOptions())
	require.NoError(t, err)
	return services.NewDashboardService(views, charts.NewRenderer(3, 2), nil, nil, nil)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestViewsHandler_ListAndRows(t *testing.T) {
	router := newRouter(t, newDashboard(t), nil)

	rec := get(t, router, "/api/views")
	require.Equal(t, http.StatusOK, rec.Code)
	views := decode(t, rec)["views"].([]any)
	require.Len(t, views, 2)
	assert.Equal(t, "local", views[1].(map[string]any)["name"])

	rec = get(t, router, "/api/views/global?offset=2&limit=1")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	assert.Equal(t, float64(4), page["total"])
	rows := page["rows"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(12), rows[0].(map[string]any)["z"])
}

func TestViewsHandler_Validation(t *testing.T) {
	router := newRouter(t, newDashboard(t), nil)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"unknown view", "/api/views/regional", http.StatusBadRequest},
		{"negative offset", "/api/views/global?offset=-1", http.StatusBadRequest},
		{"limit too large", "/api/views/global?limit=5001", http.StatusBadRequest},
		{"limit not a number", "/api/views/global?limit=ten", http.StatusBadRequest},
		{"unknown column", "/api/views/global/columns/radius_unc", http.StatusNotFound},
		{"unknown chart", "/api/charts/nope", http.StatusNotFound},
		{"bad image format", "/api/charts/global_mass_number/image.gif", http.StatusBadRequest},
		{"unknown route", "/api/nothing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, router, tt.target)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestViewsHandler_Column(t *testing.T) {
	router := newRouter(t, newDashboard(t), nil)

	rec := get(t, router, "/api/views/local/columns/%20decay")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, " decay", body["column"])
	assert.Equal(t, []any{"B-", "B-"}, body["values"])

	rec = get(t, router, "/api/views/global/columns/BINDING%20ENERGY%2FA")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "binding_energy_per_nucleon", decode(t, rec)["field"])
}

func TestViewsHandler_SummaryScalerDataset(t *testing.T) {
	router := newRouter(t, newDashboard(t), nil)

	rec := get(t, router, "/api/views/global/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(4), decode(t, rec)["rows"])

	rec = get(t, router, "/api/scaler")
	require.Equal(t, http.StatusOK, rec.Code)
	features := decode(t, rec)["features"].([]any)
	assert.Len(t, features, dataprocessing.NumFeatures)

	rec = get(t, router, "/api/dataset")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(4), decode(t, rec)["source_rows"])
}

func TestViewsHandler_Exports(t *testing.T) {
	router := newRouter(t, newDashboard(t), nil)

	rec := get(t, router, "/api/views/local/export.csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "local.csv")
	assert.Contains(t, rec.Body.String(), "radius_val")

	rec = get(t, router, "/api/views/export.xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "views.xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")
}

func TestChartsHandler(t *testing.T) {
	router := newRouter(t, newDashboard(t), nil)

	rec := get(t, router, "/api/charts")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["tabs"], 2)

	rec = get(t, router, "/api/charts/global_radioactivity")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["series"], 2)

	rec = get(t, router, "/api/charts/global_mass_number/image.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func TestPageHandler(t *testing.T) {
	router := newRouter(t, newDashboard(t), nil)

	rec := get(t, router, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Nuclear Charge Radius Exploration")
	assert.Contains(t, body, "R = 1.2 A^{1/3}")
	assert.Contains(t, body, "/api/charts/global_mass_number/image.svg")
	assert.NotContains(t, body, "local_neutron_number")

	// Scatter charts are upgraded in the browser from their JSON data; the other kinds
	// stay static images.
	assert.Contains(t, body, `data-chart="global_mass_number"`)
	assert.NotContains(t, body, `data-chart="global_radioactivity"`)
	assert.Contains(t, body, `fetch("/api/charts/"`)

	rec = get(t, router, "/?tab=shell-closure")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/charts/local_neutron_number/image.svg")
}

func TestHealthHandler(t *testing.T) {
	svc := newDashboard(t)
	router := newRouter(t, svc, services.NewHealthService(svc, nil, nil))

	rec := get(t, router, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])

	rec = get(t, router, "/api/health/ready")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, router, "/api/version")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v1", decode(t, rec)["api_version"])

	notReady := newRouter(t, svc, services.NewHealthService(nil, nil, nil))
	rec = get(t, notReady, "/api/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// MockDashboardService is a mock implementation of DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Views() []domain.ViewInfo {
	views, _ := m.Called().Get(0).([]domain.ViewInfo)
	return views
}

func (m *MockDashboardService) View(name string) (domain.ViewInfo, error) {
	args := m.Called(name)
	return args.Get(0).(domain.ViewInfo), args.Error(1)
}

func (m *MockDashboardService) Rows(ctx context.Context, view string, offset, limit int) (*domain.RowsPage, error) {
	args := m.Called(view, offset, limit)
	page, _ := args.Get(0).(*domain.RowsPage)
	return page, args.Error(1)
}

func (m *MockDashboardService) Column(ctx context.Context, view, column string) (*domain.ColumnData, error) {
	args := m.Called(view, column)
	data, _ := args.Get(0).(*domain.ColumnData)
	return data, args.Error(1)
}

func (m *MockDashboardService) Summary(ctx context.Context, view string) (*dataprocessing.Summary, error) {
	args := m.Called(view)
	s, _ := args.Get(0).(*dataprocessing.Summary)
	return s, args.Error(1)
}

func (m *MockDashboardService) Scaler() (domain.ScalerParams, error) {
	args := m.Called()
	return args.Get(0).(domain.ScalerParams), args.Error(1)
}

func (m *MockDashboardService) Dataset() (domain.DatasetInfo, error) {
	args := m.Called()
	return args.Get(0).(domain.DatasetInfo), args.Error(1)
}

func (m *MockDashboardService) Catalog() domain.Catalog {
	return m.Called().Get(0).(domain.Catalog)
}

func (m *MockDashboardService) ChartData(ctx context.Context, id string) (*domain.ChartData, error) {
	args := m.Called(id)
	data, _ := args.Get(0).(*domain.ChartData)
	return data, args.Error(1)
}

func (m *MockDashboardService) ChartImage(ctx context.Context, id, format string) ([]byte, error) {
	args := m.Called(id, format)
	img, _ := args.Get(0).([]byte)
	return img, args.Error(1)
}

func (m *MockDashboardService) ExportCSV(ctx context.Context, w io.Writer, view string) error {
	return m.Called(view).Error(0)
}

func (m *MockDashboardService) ExportXLSX(ctx context.Context, w io.Writer) error {
	return m.Called().Error(0)
}

func TestHandlers_ServiceErrors(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("Views").Return(nil)
	svc.On("Rows", "global", 0, 100).Return(nil, services.ErrNotPrepared)
	svc.On("ExportCSV", "local").Return(&dataprocessing.SourceUnavailableError{Path: "combined_data.csv", Err: errors.New("gone")})
	svc.On("ChartImage", "global_mass_number", "png").Return(nil, &charts.FieldError{Chart: "global_mass_number", Field: "x"})

	router := newRouter(t, svc, nil)

	tests := []struct {
		target string
		status int
	}{
		{"/api/views", http.StatusServiceUnavailable},
		{"/api/views/global", http.StatusServiceUnavailable},
		{"/api/views/local/export.csv", http.StatusServiceUnavailable},
		{"/api/charts/global_mass_number/image.png", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := get(t, router, tt.target)
		assert.Equal(t, tt.status, rec.Code, tt.target)
	}
	svc.AssertExpectations(t)
}
