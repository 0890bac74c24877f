package dataprocessing

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrScalerNotFitted is returned when Transform is called before Fit.
var ErrScalerNotFitted = errors.New("scaler is not fitted")

// StandardScaler standardizes each column to zero mean and unit variance using
// population statistics. NaN cells are ignored when fitting and stay NaN when
// transforming.
type StandardScaler struct {
	Columns  []string  `json:"columns"`
	Mean     []float64 `json:"mean"`
	Var      []float64 `json:"var"`
	Scale    []float64 `json:"scale"`
	NSamples []int     `json:"n_samples"`
	fitted   bool
}

// NewStandardScaler creates an unfitted scaler for the named columns.
func NewStandardScaler(columns ...string) *StandardScaler {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &StandardScaler{Columns: cols}
}

// Fitted reports whether Fit has completed.
func (s *StandardScaler) Fitted() bool { return s.fitted }

// Fit computes per-column mean and population variance. A column with zero variance
// gets a scale of 1 so that it maps to zeros instead of NaN.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return ErrEmptyDataset
	}
	c := len(X[0])
	if len(s.Columns) != 0 && len(s.Columns) != c {
		return fmt.Errorf("scaler has %d columns, data has %d", len(s.Columns), c)
	}

	s.Mean = make([]float64, c)
	s.Var = make([]float64, c)
	s.Scale = make([]float64, c)
	s.NSamples = make([]int, c)

	col := make([]float64, 0, len(X))
	for j := 0; j < c; j++ {
		col = col[:0]
		for i, row := range X {
			if len(row) != c {
				return fmt.Errorf("row %d has %d columns, want %d", i+1, len(row), c)
			}
			if !math.IsNaN(row[j]) {
				col = append(col, row[j])
			}
		}

		s.NSamples[j] = len(col)
		if len(col) == 0 {
			s.Mean[j], s.Var[j], s.Scale[j] = math.NaN(), math.NaN(), 1
			continue
		}

		s.Mean[j], s.Var[j] = stat.PopMeanVariance(col, nil)
		s.Scale[j] = math.Sqrt(s.Var[j])
		if s.Scale[j] == 0 {
			s.Scale[j] = 1
		}
	}

	s.fitted = true
	return nil
}

// TransformRow applies the fitted parameters to a single row.
func (s *StandardScaler) TransformRow(row []float64) ([]float64, error) {
	if !s.fitted {
		return nil, ErrScalerNotFitted
	}
	if len(row) != len(s.Mean) {
		return nil, fmt.Errorf("row has %d columns, scaler has %d", len(row), len(s.Mean))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out, nil
}

// Transform applies the fitted parameters to every row of X.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	Y := make([][]float64, len(X))
	for i, row := range X {
		out, err := s.TransformRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		Y[i] = out
	}
	return Y, nil
}

// FitTransform fits on X and returns X transformed.
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransformRow maps a standardized row back to the fitted scale.
func (s *StandardScaler) InverseTransformRow(row []float64) ([]float64, error) {
	if !s.fitted {
		return nil, ErrScalerNotFitted
	}
	if len(row) != len(s.Mean) {
		return nil, fmt.Errorf("row has %d columns, scaler has %d", len(row), len(s.Mean))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = v*s.Scale[j] + s.Mean[j]
	}
	return out, nil
}

// Clone returns a deep copy so callers cannot mutate fitted parameters.
func (s *StandardScaler) Clone() *StandardScaler {
	c := &StandardScaler{
		Columns:  append([]string(nil), s.Columns...),
		Mean:     append([]float64(nil), s.Mean...),
		Var:      append([]float64(nil), s.Var...),
		Scale:    append([]float64(nil), s.Scale...),
		NSamples: append([]int(nil), s.NSamples...),
		fitted:   s.fitted,
	}
	return c
}
