// Package http implements the HTTP handlers of the nucdash server. Handlers stay
// thin: they validate path and query parameters, call the dashboard service and map
// its errors to RFC 7807 problem responses.
//
// # Handlers
//
//   - ViewsHandler: /api/views, rows, columns, summaries, CSV/XLSX downloads, the
//     fitted scaler and the dataset description
//   - ChartsHandler: /api/charts catalog, chart data and png/svg images
//   - HealthHandler: /api/health, readiness, liveness and /api/version
//   - PageHandler: the server-rendered dashboard at /
//
// Each handler exposes Routes so the application router can mount it.
package http
