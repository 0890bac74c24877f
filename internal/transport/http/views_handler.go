package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"nucdash/internal/config"
	apierrors "nucdash/internal/errors"
	"nucdash/internal/exporter"
	"nucdash/internal/middleware"
	api "nucdash/pkg/contracts/api/v1"
)

type viewKey struct{}

// ViewsHandler serves the prepared views and their downloads
type ViewsHandler struct {
	service      DashboardServiceInterface
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewViewsHandler creates a new views handler
func NewViewsHandler(service DashboardServiceInterface, validator *middleware.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ViewsHandler {
	return &ViewsHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("handler", "views")),
		errorHandler: errorHandler,
	}
}

// Routes returns the view routes, mounted under /api/views
func (h *ViewsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListViews)
	r.Get("/export.xlsx", h.ExportXLSX)

	r.Route("/{view}", func(r chi.Router) {
		r.Use(h.ViewCtx)
		r.Get("/", h.GetRows)
		r.Get("/summary", h.GetSummary)
		r.Get("/export.csv", h.ExportCSV)
		r.Get("/columns/{column}", h.GetColumn)
	})
	return r
}

// ViewCtx validates the view parameter and stores it in the request context
func (h *ViewsHandler) ViewCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := api.ViewRequest{View: chi.URLParam(r, "view")}
		if apiErr := h.validator.ValidateStruct(req); apiErr != nil {
			h.errorHandler.HandleError(w, r, apiErr)
			return
		}
		ctx := context.WithValue(r.Context(), viewKey{}, req.View)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func viewFrom(r *http.Request) string {
	view, _ := r.Context().Value(viewKey{}).(string)
	return view
}

// ListViews handles GET /api/views
func (h *ViewsHandler) ListViews(w http.ResponseWriter, r *http.Request) {
	views := h.service.Views()
	if views == nil {
		h.errorHandler.HandleError(w, r, apierrors.NewUnavailableError("views are not prepared", nil))
		return
	}
	render.JSON(w, r, map[string]any{"views": views})
}

// GetRows handles GET /api/views/{view}?offset=&limit=
func (h *ViewsHandler) GetRows(w http.ResponseWriter, r *http.Request) {
	offset, apiErr := middleware.QueryInt(r, "offset", 0)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	limit, apiErr := middleware.QueryInt(r, "limit", config.DefaultPageLimit)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	req := api.RowsRequest{View: viewFrom(r), Offset: offset, Limit: limit}
	if apiErr := h.validator.ValidateStruct(req); apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	page, err := h.service.Rows(r.Context(), req.View, req.Offset, req.Limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err, req.View, "", ""))
		return
	}
	render.JSON(w, r, page)
}

// GetColumn handles GET /api/views/{view}/columns/{column}. The column is a
// URL-escaped verbatim name or a field id.
func (h *ViewsHandler) GetColumn(w http.ResponseWriter, r *http.Request) {
	column := chi.URLParam(r, "column")
	if unescaped, err := url.PathUnescape(column); err == nil {
		column = unescaped
	}

	req := api.ColumnRequest{View: viewFrom(r), Column: column}
	if apiErr := h.validator.ValidateStruct(req); apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	data, err := h.service.Column(r.Context(), req.View, req.Column)
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err, req.View, req.Column, ""))
		return
	}
	render.JSON(w, r, data)
}

// GetSummary handles GET /api/views/{view}/summary
func (h *ViewsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	view := viewFrom(r)
	summary, err := h.service.Summary(r.Context(), view)
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err, view, "", ""))
		return
	}
	render.JSON(w, r, summary)
}

// ExportCSV handles GET /api/views/{view}/export.csv
func (h *ViewsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	view := viewFrom(r)

	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), &buf, view); err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err, view, "", ""))
		return
	}
	h.download(w, r, exporter.FormatCSV, exporter.Filename(view, exporter.FormatCSV), buf.Bytes())
}

// ExportXLSX handles GET /api/views/export.xlsx
func (h *ViewsHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.ExportXLSX(r.Context(), &buf); err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err, "", "", ""))
		return
	}
	h.download(w, r, exporter.FormatXLSX, exporter.Filename("", exporter.FormatXLSX), buf.Bytes())
}

func (h *ViewsHandler) download(w http.ResponseWriter, r *http.Request, format exporter.Format, filename string, body []byte) {
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.WarnContext(r.Context(), "download interrupted",
			slog.String("file", filename),
			slog.String("error", err.Error()))
	}
}

// GetScaler handles GET /api/scaler
func (h *ViewsHandler) GetScaler(w http.ResponseWriter, r *http.Request) {
	params, err := h.service.Scaler()
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err, "", "", ""))
		return
	}
	render.JSON(w, r, params)
}

// GetDataset handles GET /api/dataset
func (h *ViewsHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Dataset()
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err, "", "", ""))
		return
	}
	render.JSON(w, r, info)
}
