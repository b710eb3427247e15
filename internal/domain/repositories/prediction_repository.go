package repositories

import (
	"context"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
)

// PredictionRepository defines the interface for persisted risk predictions
type PredictionRepository interface {
	// Create persists a prediction
	Create(ctx context.Context, prediction *entities.RiskPrediction) error

	// GetByAppointmentID retrieves the latest prediction for an appointment
	GetByAppointmentID(ctx context.Context, appointmentID string) (*entities.RiskPrediction, error)

	// ListByPatient retrieves predictions for a patient, newest first
	ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.RiskPrediction, error)
}
