package repositories

import (
	"context"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// Create persists a new appointment
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// GetActiveByPatientID retrieves the earliest future, non-cancelled
	// appointment for a patient. Returns a NOT_FOUND AppError when none
	// is resolvable.
	GetActiveByPatientID(ctx context.Context, patientID string) (*entities.Appointment, error)

	// UpdateRisk sets the denormalized no-show risk tier on an appointment
	UpdateRisk(ctx context.Context, id string, risk entities.RiskLevel) error
}

// ReminderRepository defines the interface for reminder dispatch records
type ReminderRepository interface {
	// Create persists a reminder dispatch record
	Create(ctx context.Context, reminder *entities.Reminder) error

	// HasReminderBeenSent reports whether an SMS reminder has already
	// gone out for the appointment
	HasReminderBeenSent(ctx context.Context, appointmentID string) (bool, error)
}
