package services

import (
	"github.com/consultacerta/noshow-backend/internal/domain/providers"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

// ClusterService assigns a patient to one of the clusters discovered by the
// offline unsupervised model. The caller supplies the already-coerced numeric
// health subset; the service standardizes it with the clustering scaler and
// delegates to the opaque predictor.
type ClusterService struct {
	scaler providers.Scaler
	model  providers.ClusterModel
}

// NewClusterService creates a new cluster service
func NewClusterService(scaler providers.Scaler, model providers.ClusterModel) *ClusterService {
	return &ClusterService{
		scaler: scaler,
		model:  model,
	}
}

// Assign returns the cluster id for the numeric health subset
// (age, hypertension, diabetes, alcoholism, disability — gender excluded).
func (s *ClusterService) Assign(health []float64) (int, error) {
	standardized, err := s.scaler.Transform(health)
	if err != nil {
		return 0, apperrors.NewModelUnavailableError("clustering scaler rejected health subset", err)
	}

	cluster, err := s.model.Predict(standardized)
	if err != nil {
		return 0, apperrors.NewModelUnavailableError("clustering predictor failed", err)
	}
	return cluster, nil
}

// NumClusters returns the cardinality of the cluster label set
func (s *ClusterService) NumClusters() int {
	return s.model.NumClusters()
}
