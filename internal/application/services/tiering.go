package services

import (
	"github.com/consultacerta/noshow-backend/internal/domain/entities"
)

// Tier cut points. Bands are boundary-inclusive on their lower bound: 0.70
// itself is MUITO_ALTO, 0.50 is ALTO, 0.30 is MEDIO.
const (
	tierVeryHighFloor = 0.70
	tierHighFloor     = 0.50
	tierMediumFloor   = 0.30
)

// RiskLevelFor maps a probability to its risk tier. First match wins; the
// four bands partition [0,1] with no gap or overlap.
func RiskLevelFor(probability float64) entities.RiskLevel {
	switch {
	case probability >= tierVeryHighFloor:
		return entities.RiskVeryHigh
	case probability >= tierHighFloor:
		return entities.RiskHigh
	case probability >= tierMediumFloor:
		return entities.RiskMedium
	default:
		return entities.RiskLow
	}
}
