package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKMeansModel_Validation(t *testing.T) {
	_, err := NewKMeansModel(nil)
	assert.Error(t, err)

	_, err = NewKMeansModel([][]float64{{}})
	assert.Error(t, err)

	_, err = NewKMeansModel([][]float64{{1, 2}, {1}})
	assert.Error(t, err)
}

func TestPredict_NearestCentroid(t *testing.T) {
	km, err := NewKMeansModel([][]float64{
		{0, 0},
		{10, 0},
		{0, 10},
	})
	require.NoError(t, err)

	cluster, err := km.Predict([]float64{9, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, cluster)

	cluster, err = km.Predict([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0, cluster)
}

func TestPredict_TieResolvesToLowestIndex(t *testing.T) {
	km, err := NewKMeansModel([][]float64{{0}, {4}})
	require.NoError(t, err)

	cluster, err := km.Predict([]float64{2})
	require.NoError(t, err)
	assert.Equal(t, 0, cluster)
}

func TestPredict_DimensionMismatch(t *testing.T) {
	km, err := NewKMeansModel([][]float64{{0, 0}})
	require.NoError(t, err)

	_, err = km.Predict([]float64{1})
	assert.Error(t, err)
}

func TestKMeansNumClusters(t *testing.T) {
	km, err := NewKMeansModel([][]float64{{0}, {1}, {2}, {3}})
	require.NoError(t, err)
	assert.Equal(t, 4, km.NumClusters())
}
