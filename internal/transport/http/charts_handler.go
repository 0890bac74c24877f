package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"nucdash/internal/charts"
	apierrors "nucdash/internal/errors"
	"nucdash/internal/middleware"
	api "nucdash/pkg/contracts/api/v1"
)

// ChartsHandler serves the chart catalog, chart data and rendered images
type ChartsHandler struct {
	service      DashboardServiceInterface
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewChartsHandler creates a new charts handler
func NewChartsHandler(service DashboardServiceInterface, validator *middleware.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartsHandler {
	return &ChartsHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("handler", "charts")),
		errorHandler: errorHandler,
	}
}

// Routes returns the chart routes, mounted under /api/charts
func (h *ChartsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetCatalog)
	r.Get("/{id}", h.GetChartData)
	r.Get("/{id}/image.{format}", h.GetChartImage)
	return r
}

// GetCatalog handles GET /api/charts
func (h *ChartsHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Catalog())
}

// GetChartData handles GET /api/charts/{id}
func (h *ChartsHandler) GetChartData(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, err := h.service.ChartData(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err, "", "", id))
		return
	}
	render.JSON(w, r, data)
}

// GetChartImage handles GET /api/charts/{id}/image.{format}
func (h *ChartsHandler) GetChartImage(w http.ResponseWriter, r *http.Request) {
	req := api.ChartImageRequest{ID: chi.URLParam(r, "id"), Format: chi.URLParam(r, "format")}
	if apiErr := h.validator.ValidateStruct(req); apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	img, err := h.service.ChartImage(r.Context(), req.ID, req.Format)
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err, "", "", req.ID))
		return
	}

	w.Header().Set("Content-Type", charts.ContentType(req.Format))
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		h.logger.WarnContext(r.Context(), "image write interrupted",
			slog.String("chart", req.ID),
			slog.String("error", err.Error()))
	}
}
