// Package app wires the nucdash server together.
//
// # Initialization Flow
//
//	1. Resolve and create the data, logs, charts and exports directories
//	2. Initialize OpenTelemetry and the dashboard metrics
//	3. Prepare the global and local views from the source dataset
//	4. Optionally prerender every chart into the image cache
//	5. Build the services, handlers, middleware and HTTP server
//
// # Graceful Shutdown
//
// Run serves until its context is cancelled, then drains active requests within
// the configured shutdown timeout and flushes telemetry.
//
// # Error Handling
//
// Initialization errors are returned to the caller unchanged. The package never
// calls os.Exit, so the command decides the exit status.
//
// PrepareViews and RenderCharts are also used by the prepare and render commands.
package app
