// Package middleware holds the HTTP middleware of the nucdash server: request IDs,
// CORS, secure headers, rate limiting, request deadlines, OpenTelemetry
// instrumentation and request validation.
package middleware
