package dataprocessing

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when the source holds a header but no data rows,
// or when every row was dropped before fitting.
var ErrEmptyDataset = errors.New("dataset has no rows")

// MissingColumnError reports a required column that is absent from the source.
type MissingColumnError struct {
	Column string
	Step   string
}

func (e *MissingColumnError) Error() string {
	if e.Step == "" {
		return fmt.Sprintf("missing column %q", e.Column)
	}
	return fmt.Sprintf("missing column %q during %s", e.Column, e.Step)
}

// InvalidValueError reports a cell that cannot be used. Row is the 1-based data row
// (the header is not counted).
type InvalidValueError struct {
	Column string
	Row    int
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q in column %q at row %d: %s", e.Value, e.Column, e.Row, e.Reason)
}

// SourceUnavailableError reports a source file that is missing or unreadable.
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %q unavailable: %v", e.Path, e.Err)
}

// Unwrap allows errors.Is(err, fs.ErrNotExist) on the underlying cause
func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}
