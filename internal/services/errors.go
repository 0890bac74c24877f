package services

import "errors"

// Dashboard service errors
var (
	ErrViewNotFound   = errors.New("view not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrChartNotFound  = errors.New("chart not found")
	ErrNotPrepared    = errors.New("views are not prepared")
)
