package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	apierrors "nucdash/internal/errors"
	"nucdash/pkg/contracts/domain"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

type pageData struct {
	Catalog domain.Catalog
	Active  domain.Tab
	Views   []domain.ViewInfo
	Format  string
}

// PageHandler serves the server-rendered dashboard
type PageHandler struct {
	service      DashboardServiceInterface
	format       string
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewPageHandler creates a page handler whose images use the given format
func NewPageHandler(service DashboardServiceInterface, format string, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *PageHandler {
	if format == "" {
		format = "svg"
	}
	return &PageHandler{
		service:      service,
		format:       format,
		logger:       logger.With(slog.String("handler", "page")),
		errorHandler: errorHandler,
	}
}

// ServeDashboard handles GET /?tab=. Unknown tabs fall back to the first one.
func (h *PageHandler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	catalog := h.service.Catalog()
	if len(catalog.Tabs) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.NewUnavailableError("dashboard has no tabs", nil))
		return
	}

	data := pageData{Catalog: catalog, Active: catalog.Tabs[0], Views: h.service.Views(), Format: h.format}
	if tab := r.URL.Query().Get("tab"); tab != "" {
		for _, t := range catalog.Tabs {
			if t.ID == tab {
				data.Active = t
				break
			}
		}
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		h.logger.ErrorContext(r.Context(), "template execution failed", slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
