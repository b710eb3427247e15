package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	"github.com/consultacerta/noshow-backend/internal/domain/providers"
	"github.com/consultacerta/noshow-backend/internal/domain/repositories"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

// HealthProfileService handles the patient health questionnaire read/write
// path used by the feature composer.
type HealthProfileService struct {
	repo         repositories.HealthProfileRepository
	appointments repositories.AppointmentRepository
	cache        providers.CacheProvider
}

// NewHealthProfileService creates a new health profile service
func NewHealthProfileService(repo repositories.HealthProfileRepository) *HealthProfileService {
	return &HealthProfileService{repo: repo}
}

// SetCache wires prediction cache invalidation. A profile write changes the
// clinical features, so any cached prediction for the patient's upcoming
// appointment is stale after it.
func (s *HealthProfileService) SetCache(appointments repositories.AppointmentRepository, cache providers.CacheProvider) {
	s.appointments = appointments
	s.cache = cache
}

// Get retrieves the health profile for a patient
func (s *HealthProfileService) Get(ctx context.Context, patientID string) (*entities.HealthProfile, error) {
	if patientID == "" {
		return nil, apperrors.NewValidationError("patient_id is required")
	}
	return s.repo.GetByPatientID(ctx, patientID)
}

// Save creates or replaces a patient's health profile. Writes are validated
// strictly even though scoring tolerates unknown values, so the store stays
// clean going forward.
func (s *HealthProfileService) Save(ctx context.Context, profile *entities.HealthProfile) error {
	if profile.PatientID == "" {
		return apperrors.NewValidationError("patient_id is required")
	}
	if profile.Age < 0 {
		return apperrors.NewValidationError("age must be non-negative")
	}
	if profile.Gender != "M" && profile.Gender != "F" {
		return apperrors.NewValidationError("gender must be M or F")
	}
	for field, value := range map[string]entities.YesNo{
		"hypertension": profile.Hypertension,
		"diabetes":     profile.Diabetes,
		"alcoholism":   profile.Alcoholism,
		"disability":   profile.Disability,
	} {
		if value != entities.Yes && value != entities.No {
			return apperrors.NewValidationError(field + " must be S or N")
		}
	}

	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return err
	}

	s.invalidatePrediction(ctx, profile.PatientID)
	return nil
}

// invalidatePrediction drops the cached prediction for the patient's active
// appointment. Best effort: a failed invalidation only shortens cache
// freshness guarantees, it never fails the profile write.
func (s *HealthProfileService) invalidatePrediction(ctx context.Context, patientID string) {
	if s.cache == nil || s.appointments == nil {
		return
	}

	appointment, err := s.appointments.GetActiveByPatientID(ctx, patientID)
	if err != nil {
		return
	}

	if err := s.cache.Delete(ctx, predictionCacheKey(appointment.ID)); err != nil {
		log.Warn().Err(err).
			Str("patient_id", patientID).
			Str("appointment_id", appointment.ID).
			Msg("failed to invalidate cached prediction after profile update")
	}
}
