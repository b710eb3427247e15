package model

import (
	"fmt"

	"github.com/consultacerta/noshow-backend/internal/domain/providers"
)

// KMeansModel assigns a vector to the nearest of the centroids fitted
// offline. Cluster ids are centroid indices, so the label set is fixed at
// load time.
type KMeansModel struct {
	centroids [][]float64
	dim       int
}

// NewKMeansModel builds a predictor from fitted centroids
func NewKMeansModel(centroids [][]float64) (*KMeansModel, error) {
	if len(centroids) == 0 {
		return nil, fmt.Errorf("clustering model has no centroids")
	}

	dim := len(centroids[0])
	if dim == 0 {
		return nil, fmt.Errorf("clustering centroids are empty")
	}
	for i, c := range centroids {
		if len(c) != dim {
			return nil, fmt.Errorf("centroid %d has dimensionality %d, expected %d", i, len(c), dim)
		}
	}

	return &KMeansModel{centroids: centroids, dim: dim}, nil
}

// Predict returns the index of the nearest centroid by squared euclidean
// distance. Ties resolve to the lowest index, matching the training library.
func (m *KMeansModel) Predict(standardized []float64) (int, error) {
	if len(standardized) != m.dim {
		return 0, fmt.Errorf("vector dimensionality %d does not match centroid dimensionality %d", len(standardized), m.dim)
	}

	best := 0
	bestDist := squaredDistance(standardized, m.centroids[0])
	for i := 1; i < len(m.centroids); i++ {
		if d := squaredDistance(standardized, m.centroids[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, nil
}

// NumClusters returns the cardinality of the label set
func (m *KMeansModel) NumClusters() int {
	return len(m.centroids)
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

var _ providers.ClusterModel = (*KMeansModel)(nil)
