package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	"github.com/consultacerta/noshow-backend/internal/domain/repositories"
	"github.com/consultacerta/noshow-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

// HealthProfileAdapter implements the HealthProfileRepository interface
type HealthProfileAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHealthProfileAdapter creates a new health profile adapter
func NewHealthProfileAdapter(client *postgres.Client) repositories.HealthProfileRepository {
	return &HealthProfileAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByPatientID retrieves the health profile for a patient
func (a *HealthProfileAdapter) GetByPatientID(ctx context.Context, patientID string) (*entities.HealthProfile, error) {
	query, args, err := a.db.Select(
		"patient_id", "age", "gender", "hypertension", "diabetes",
		"alcoholism", "disability", "disability_type",
		"created_at", "updated_at",
	).From("patient_health_profiles").
		Where(goqu.Ex{"patient_id": patientID}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	profile := &entities.HealthProfile{}
	var disabilityType sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&profile.PatientID,
		&profile.Age,
		&profile.Gender,
		&profile.Hypertension,
		&profile.Diabetes,
		&profile.Alcoholism,
		&profile.Disability,
		&disabilityType,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("health profile for patient %s not found", patientID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get health profile", err)
	}

	if disabilityType.Valid {
		profile.DisabilityType = &disabilityType.String
	}

	return profile, nil
}

// Upsert creates or replaces the health profile for a patient
func (a *HealthProfileAdapter) Upsert(ctx context.Context, profile *entities.HealthProfile) error {
	record := goqu.Record{
		"patient_id":      profile.PatientID,
		"age":             profile.Age,
		"gender":          profile.Gender,
		"hypertension":    profile.Hypertension,
		"diabetes":        profile.Diabetes,
		"alcoholism":      profile.Alcoholism,
		"disability":      profile.Disability,
		"disability_type": profile.DisabilityType,
		"created_at":      profile.CreatedAt,
		"updated_at":      profile.UpdatedAt,
	}

	update := goqu.Record{
		"age":             profile.Age,
		"gender":          profile.Gender,
		"hypertension":    profile.Hypertension,
		"diabetes":        profile.Diabetes,
		"alcoholism":      profile.Alcoholism,
		"disability":      profile.Disability,
		"disability_type": profile.DisabilityType,
		"updated_at":      profile.UpdatedAt,
	}

	query, args, err := a.db.Insert("patient_health_profiles").
		Rows(record).
		OnConflict(goqu.DoUpdate("patient_id", update)).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to upsert health profile", err)
	}

	return nil
}
