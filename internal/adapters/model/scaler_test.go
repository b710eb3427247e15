package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStandardScaler_Validation(t *testing.T) {
	_, err := NewStandardScaler([]float64{1, 2}, []float64{1})
	assert.Error(t, err)

	_, err = NewStandardScaler(nil, nil)
	assert.Error(t, err)

	_, err = NewStandardScaler([]float64{1, 2}, []float64{1, 0})
	assert.Error(t, err)
}

func TestTransform(t *testing.T) {
	scaler, err := NewStandardScaler([]float64{10, 20}, []float64{2, 5})
	require.NoError(t, err)

	out, err := scaler.Transform([]float64{14, 10})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, -2}, out)
}

func TestTransform_DimensionMismatch(t *testing.T) {
	scaler, err := NewStandardScaler([]float64{10, 20}, []float64{2, 5})
	require.NoError(t, err)

	_, err = scaler.Transform([]float64{1})
	assert.Error(t, err)
}

func TestScalerDim(t *testing.T) {
	scaler, err := NewStandardScaler([]float64{0, 0, 0}, []float64{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, scaler.Dim())
}
