package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeatureVector_OrdersValues(t *testing.T) {
	vector, err := NewFeatureVector(
		[]string{"b", "a", "c"},
		map[string]float64{"a": 1, "b": 2, "c": 3},
	)
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 1, 3}, vector.Values)
	assert.Equal(t, 3, vector.Dim())

	v, ok := vector.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	_, ok = vector.Get("missing")
	assert.False(t, ok)
}

func TestNewFeatureVector_MissingFeature(t *testing.T) {
	_, err := NewFeatureVector(
		[]string{"a", "b"},
		map[string]float64{"a": 1, "c": 3},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing feature "b"`)
}

func TestNewFeatureVector_CountMismatch(t *testing.T) {
	_, err := NewFeatureVector(
		[]string{"a"},
		map[string]float64{"a": 1, "b": 2},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feature count mismatch")
}
