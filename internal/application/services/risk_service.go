package services

import (
	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	"github.com/consultacerta/noshow-backend/internal/domain/providers"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

// RiskScorer standardizes a composed feature vector with the main scaler and
// applies the pretrained no-show classifier. It knows nothing about
// clustering; dummies arrive as ordinary features.
type RiskScorer struct {
	scaler    providers.Scaler
	model     providers.NoShowModel
	threshold float64
}

// NewRiskScorer creates a new risk scorer with a fixed decision threshold
func NewRiskScorer(scaler providers.Scaler, model providers.NoShowModel, threshold float64) *RiskScorer {
	return &RiskScorer{
		scaler:    scaler,
		model:     model,
		threshold: threshold,
	}
}

// Score returns the probability of a no-show and the threshold decision.
// The decision is exactly probability >= threshold, no epsilon.
func (s *RiskScorer) Score(vector *entities.FeatureVector) (float64, bool, error) {
	if vector.Dim() != s.scaler.Dim() {
		return 0, false, apperrors.NewModelUnavailableError("feature vector dimensionality does not match scaler", nil)
	}

	standardized, err := s.scaler.Transform(vector.Values)
	if err != nil {
		return 0, false, apperrors.NewModelUnavailableError("failed to standardize feature vector", err)
	}

	probability, err := s.model.PredictProba(standardized)
	if err != nil {
		return 0, false, apperrors.NewModelUnavailableError("no-show classifier failed", err)
	}

	return probability, probability >= s.threshold, nil
}

// Threshold returns the configured decision threshold
func (s *RiskScorer) Threshold() float64 {
	return s.threshold
}
