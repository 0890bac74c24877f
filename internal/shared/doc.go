// Package shared holds helpers used by more than one nucdash package.
//
// The testutil subpackage provides a capturing slog handler and the nuclide CSV
// fixture that the pipeline, exporter, chart, service and transport tests share.
// Nothing here may import another internal package.
package shared
