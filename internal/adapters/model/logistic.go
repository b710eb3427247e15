package model

import (
	"fmt"
	"math"

	"github.com/consultacerta/noshow-backend/internal/domain/providers"
)

// LogisticModel is the pretrained binary no-show classifier: a logistic
// regression over the standardized feature vector.
type LogisticModel struct {
	coefficients []float64
	intercept    float64
}

// NewLogisticModel builds a classifier from fitted parameters
func NewLogisticModel(coefficients []float64, intercept float64) (*LogisticModel, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("classifier has no coefficients")
	}
	return &LogisticModel{coefficients: coefficients, intercept: intercept}, nil
}

// PredictProba returns the probability of the positive ("will miss") class
func (m *LogisticModel) PredictProba(standardized []float64) (float64, error) {
	if len(standardized) != len(m.coefficients) {
		return 0, fmt.Errorf("vector dimensionality %d does not match classifier dimensionality %d", len(standardized), len(m.coefficients))
	}

	z := m.intercept
	for i, v := range standardized {
		z += m.coefficients[i] * v
	}
	return sigmoid(z), nil
}

// Dim returns the input dimensionality the model was trained on
func (m *LogisticModel) Dim() int {
	return len(m.coefficients)
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

var _ providers.NoShowModel = (*LogisticModel)(nil)
