package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	"github.com/consultacerta/noshow-backend/internal/domain/repositories"
	"github.com/consultacerta/noshow-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var appointmentColumns = []interface{}{
	"id", "patient_id", "scheduled_on", "appointment_at",
	"status", "no_show_risk", "created_at", "updated_at",
}

// Create persists a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	record := goqu.Record{
		"id":             appointment.ID,
		"patient_id":     appointment.PatientID,
		"scheduled_on":   appointment.ScheduledOn,
		"appointment_at": appointment.AppointmentAt,
		"status":         string(appointment.Status),
		"created_at":     appointment.CreatedAt,
		"updated_at":     appointment.UpdatedAt,
	}
	if appointment.NoShowRisk != nil {
		record["no_show_risk"] = *appointment.NoShowRisk
	}

	query, args, err := a.db.Insert("appointments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}

	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := a.scanOne(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}

	return appointment, nil
}

// GetActiveByPatientID retrieves the earliest future, non-cancelled
// appointment for a patient
func (a *AppointmentAdapter) GetActiveByPatientID(ctx context.Context, patientID string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(
			goqu.Ex{"patient_id": patientID},
			goqu.C("status").Neq(entities.AppointmentStatusCancelled),
			goqu.C("appointment_at").Gte(time.Now()),
		).
		Order(goqu.I("appointment_at").Asc()).
		Limit(1).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := a.scanOne(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no active appointment for patient %s", patientID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get active appointment", err)
	}

	return appointment, nil
}

// UpdateRisk sets the denormalized no-show risk tier on an appointment
func (a *AppointmentAdapter) UpdateRisk(ctx context.Context, id string, risk entities.RiskLevel) error {
	query, args, err := a.db.Update("appointments").
		Set(goqu.Record{
			"no_show_risk": string(risk),
			"updated_at":   time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update appointment risk", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *AppointmentAdapter) scanOne(row rowScanner) (*entities.Appointment, error) {
	appointment := &entities.Appointment{}
	var noShowRisk sql.NullString

	err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.ScheduledOn,
		&appointment.AppointmentAt,
		&appointment.Status,
		&noShowRisk,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if noShowRisk.Valid {
		appointment.NoShowRisk = &noShowRisk.String
	}

	return appointment, nil
}
