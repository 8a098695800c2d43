package scoring

import (
	"fmt"
	"math"
)

// StandardScaler 标准化：每列减均值除标准差。零方差列除数取 1，避免 NaN
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Fit computes per-column mean and standard deviation.
func (s *StandardScaler) Fit(rows [][]float64) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: cannot fit scaler on empty data", ErrInvalidInput)
	}
	dim := len(rows[0])
	s.Mean = make([]float64, dim)
	s.Std = make([]float64, dim)

	for _, row := range rows {
		if len(row) != dim {
			return fmt.Errorf("%w: ragged training data, want %d columns got %d", ErrInvalidInput, dim, len(row))
		}
		for j, v := range row {
			s.Mean[j] += v
		}
	}
	n := float64(len(rows))
	for j := range s.Mean {
		s.Mean[j] /= n
	}

	for _, row := range rows {
		for j, v := range row {
			d := v - s.Mean[j]
			s.Std[j] += d * d
		}
	}
	for j := range s.Std {
		s.Std[j] = math.Sqrt(s.Std[j] / n)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	return nil
}

// Transform scales one row through the fitted parameters.
func (s *StandardScaler) Transform(row []float64) ([]float64, error) {
	if len(row) != len(s.Mean) {
		return nil, fmt.Errorf("%w: feature dimension %d does not match fitted scaler dimension %d", ErrPrediction, len(row), len(s.Mean))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out, nil
}

// Dim returns the fitted column count, 0 if unfitted.
func (s *StandardScaler) Dim() int {
	return len(s.Mean)
}
