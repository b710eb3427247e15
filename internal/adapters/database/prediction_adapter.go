package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	"github.com/consultacerta/noshow-backend/internal/domain/repositories"
	"github.com/consultacerta/noshow-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

// PredictionAdapter implements the PredictionRepository interface. The
// recommendation bundle is stored as a jsonb column; it is tier-determined
// and never queried field by field.
type PredictionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPredictionAdapter creates a new prediction adapter
func NewPredictionAdapter(client *postgres.Client) repositories.PredictionRepository {
	return &PredictionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var predictionColumns = []interface{}{
	"id", "appointment_id", "patient_id", "probability", "will_miss",
	"risk_level", "recommendations", "model_version", "created_at",
}

// Create persists a prediction
func (a *PredictionAdapter) Create(ctx context.Context, prediction *entities.RiskPrediction) error {
	recommendations, err := json.Marshal(prediction.Recommendations)
	if err != nil {
		return apperrors.NewInternalError("failed to encode recommendations", err)
	}

	record := goqu.Record{
		"id":              prediction.ID,
		"appointment_id":  prediction.AppointmentID,
		"patient_id":      prediction.PatientID,
		"probability":     prediction.Probability,
		"will_miss":       prediction.WillMiss,
		"risk_level":      string(prediction.RiskLevel),
		"recommendations": recommendations,
		"model_version":   prediction.ModelVersion,
		"created_at":      prediction.CreatedAt,
	}

	query, args, err := a.db.Insert("noshow_predictions").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create prediction", err)
	}

	return nil
}

// GetByAppointmentID retrieves the latest prediction for an appointment
func (a *PredictionAdapter) GetByAppointmentID(ctx context.Context, appointmentID string) (*entities.RiskPrediction, error) {
	query, args, err := a.db.Select(predictionColumns...).
		From("noshow_predictions").
		Where(goqu.Ex{"appointment_id": appointmentID}).
		Order(goqu.I("created_at").Desc()).
		Limit(1).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	prediction, err := scanPrediction(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no prediction for appointment %s", appointmentID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get prediction", err)
	}

	return prediction, nil
}

// ListByPatient retrieves predictions for a patient, newest first
func (a *PredictionAdapter) ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.RiskPrediction, error) {
	ds := a.db.Select(predictionColumns...).
		From("noshow_predictions").
		Where(goqu.Ex{"patient_id": patientID}).
		Order(goqu.I("created_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list predictions", err)
	}
	defer rows.Close()

	var predictions []*entities.RiskPrediction
	for rows.Next() {
		prediction, err := scanPrediction(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan prediction", err)
		}
		predictions = append(predictions, prediction)
	}

	return predictions, nil
}

func scanPrediction(row rowScanner) (*entities.RiskPrediction, error) {
	prediction := &entities.RiskPrediction{}
	var recommendations []byte

	err := row.Scan(
		&prediction.ID,
		&prediction.AppointmentID,
		&prediction.PatientID,
		&prediction.Probability,
		&prediction.WillMiss,
		&prediction.RiskLevel,
		&recommendations,
		&prediction.ModelVersion,
		&prediction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(recommendations) > 0 {
		if err := json.Unmarshal(recommendations, &prediction.Recommendations); err != nil {
			return nil, err
		}
	}

	return prediction, nil
}
