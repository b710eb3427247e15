package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	"github.com/consultacerta/noshow-backend/internal/domain/repositories"
	"github.com/consultacerta/noshow-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

// ReminderAdapter implements the ReminderRepository interface
type ReminderAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReminderAdapter creates a new reminder adapter
func NewReminderAdapter(client *postgres.Client) repositories.ReminderRepository {
	return &ReminderAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a reminder dispatch record
func (a *ReminderAdapter) Create(ctx context.Context, reminder *entities.Reminder) error {
	record := goqu.Record{
		"id":             reminder.ID,
		"appointment_id": reminder.AppointmentID,
		"channel":        reminder.Channel,
		"sent":           string(reminder.Sent),
		"created_at":     reminder.CreatedAt,
	}

	query, args, err := a.db.Insert("reminders").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create reminder", err)
	}

	return nil
}

// HasReminderBeenSent reports whether an SMS reminder has already gone out
// for the appointment
func (a *ReminderAdapter) HasReminderBeenSent(ctx context.Context, appointmentID string) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("reminders").
		Where(goqu.Ex{
			"appointment_id": appointmentID,
			"sent":           entities.Yes,
		}).
		ToSQL()

	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to count reminders", err)
	}

	return count > 0, nil
}
