package model

import (
	"fmt"

	"github.com/consultacerta/noshow-backend/internal/domain/providers"
)

// StandardScaler applies the standardization fitted offline: subtract the
// stored mean and divide by the stored scale, per feature.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

// NewStandardScaler builds a scaler from fitted parameters
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("scaler mean/scale length mismatch: %d vs %d", len(mean), len(scale))
	}
	if len(mean) == 0 {
		return nil, fmt.Errorf("scaler has no parameters")
	}
	for i, s := range scale {
		if s == 0 {
			return nil, fmt.Errorf("scaler scale[%d] is zero", i)
		}
	}
	return &StandardScaler{mean: mean, scale: scale}, nil
}

// Transform standardizes a vector
func (s *StandardScaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) != len(s.mean) {
		return nil, fmt.Errorf("vector dimensionality %d does not match scaler dimensionality %d", len(vector), len(s.mean))
	}

	out := make([]float64, len(vector))
	for i, v := range vector {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out, nil
}

// Dim returns the dimensionality the scaler was fitted on
func (s *StandardScaler) Dim() int {
	return len(s.mean)
}

var _ providers.Scaler = (*StandardScaler)(nil)
