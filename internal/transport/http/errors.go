package http

import (
	"errors"

	"nucdash/internal/charts"
	apierrors "nucdash/internal/errors"
	"nucdash/internal/services"
)

// serviceError maps service sentinel errors to API errors. Anything else is passed
// through for the error handler to classify.
func serviceError(err error, view, column, chart string) error {
	switch {
	case errors.Is(err, services.ErrViewNotFound):
		return apierrors.ViewNotFound(view)
	case errors.Is(err, services.ErrColumnNotFound):
		return apierrors.ColumnNotFound(view, column)
	case errors.Is(err, services.ErrChartNotFound):
		return apierrors.ChartNotFound(chart)
	case errors.Is(err, services.ErrNotPrepared):
		return apierrors.NewUnavailableError("views are not prepared", err)
	case errors.Is(err, charts.ErrUnsupportedFormat):
		return apierrors.ErrValidation("format", "format must be one of: png, svg")
	}
	var fe *charts.FieldError
	if errors.As(err, &fe) {
		return apierrors.NewRenderError(fe.Chart, err)
	}
	return err
}
