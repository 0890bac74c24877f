// Package services implements the business logic between the HTTP handlers and the
// prepared nuclide views.
//
// # Services
//
//   - DashboardService: views, rows, columns, summaries, the fitted scaler, the chart
//     catalog, chart data and images, and the CSV/XLSX exports
//   - HealthService: health, readiness, liveness and version reports
//
// Services take a *slog.Logger by injection and return sentinel errors such as
// ErrViewNotFound, which the transport layer maps to problem responses.
//
// Example usage:
//
//	svc := services.NewDashboardService(views, renderer, cache, metrics, logger)
//	page, err := svc.Rows(ctx, "global", 0, 100)
package services
