package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultacerta/noshow-backend/internal/adapters/model"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

func TestAssign_NearestCentroid(t *testing.T) {
	svc := testClusterService(t)

	cluster, err := svc.Assign([]float64{68, 1, 1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, cluster)

	cluster, err = svc.Assign([]float64{29, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, cluster)
}

func TestAssign_TieResolvesToLowestIndex(t *testing.T) {
	km, err := model.NewKMeansModel([][]float64{{0}, {2}})
	require.NoError(t, err)
	svc := NewClusterService(identityScaler(t, 1), km)

	// Equidistant from both centroids.
	cluster, err := svc.Assign([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, 0, cluster)
}

func TestAssign_DimensionMismatchIsModelUnavailable(t *testing.T) {
	svc := testClusterService(t)

	_, err := svc.Assign([]float64{68, 1})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeModelUnavailable))
}

func TestNumClusters(t *testing.T) {
	assert.Equal(t, 4, testClusterService(t).NumClusters())
}
