package repositories

import (
	"context"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
)

// HealthProfileRepository defines the interface for patient health profile
// data operations
type HealthProfileRepository interface {
	// GetByPatientID retrieves the health profile for a patient.
	// Returns a NOT_FOUND AppError when the patient has not filled the
	// questionnaire yet.
	GetByPatientID(ctx context.Context, patientID string) (*entities.HealthProfile, error)

	// Upsert creates or replaces the health profile for a patient
	Upsert(ctx context.Context, profile *entities.HealthProfile) error
}
