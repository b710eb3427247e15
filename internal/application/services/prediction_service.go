package services

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	"github.com/consultacerta/noshow-backend/internal/domain/providers"
	"github.com/consultacerta/noshow-backend/internal/domain/repositories"
	"github.com/consultacerta/noshow-backend/internal/infrastructure/observability"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

// PredictionRequest carries the identifiers for one scoring call. Appointment
// resolution: explicit dates win, then an appointment id, then the patient's
// earliest future appointment.
type PredictionRequest struct {
	PatientID       string
	AppointmentID   string
	SchedulingDate  *time.Time
	AppointmentDate *time.Time
}

// PredictionService runs the scoring pipeline for one appointment: fetch the
// patient facts, compose the feature vector, score it, tier the probability
// and attach the intervention bundle. Persistence, caching and event
// publication happen after scoring and never invalidate the computed
// prediction.
type PredictionService struct {
	profiles     repositories.HealthProfileRepository
	appointments repositories.AppointmentRepository
	reminders    repositories.ReminderRepository
	predictions  repositories.PredictionRepository
	composer     *FeatureComposer
	scorer       *RiskScorer
	modelVersion string

	cache    providers.CacheProvider
	cacheTTL int
	eventBus providers.EventBus
	metrics  *observability.Metrics
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	profiles repositories.HealthProfileRepository,
	appointments repositories.AppointmentRepository,
	reminders repositories.ReminderRepository,
	predictions repositories.PredictionRepository,
	composer *FeatureComposer,
	scorer *RiskScorer,
	modelVersion string,
) *PredictionService {
	return &PredictionService{
		profiles:     profiles,
		appointments: appointments,
		reminders:    reminders,
		predictions:  predictions,
		composer:     composer,
		scorer:       scorer,
		modelVersion: modelVersion,
	}
}

// SetCache enables prediction response caching with the given TTL in seconds
func (s *PredictionService) SetCache(cache providers.CacheProvider, ttlSeconds int) {
	s.cache = cache
	s.cacheTTL = ttlSeconds
}

// SetEventBus enables prediction event publication
func (s *PredictionService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// SetMetrics enables prediction metrics recording
func (s *PredictionService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// ModelVersion returns the version string of the loaded model bundle
func (s *PredictionService) ModelVersion() string {
	return s.modelVersion
}

// PredictNoShow scores the no-show risk for a patient's appointment.
func (s *PredictionService) PredictNoShow(ctx context.Context, req PredictionRequest) (*entities.RiskPrediction, error) {
	if req.PatientID == "" {
		return nil, apperrors.NewValidationError("patient_id is required")
	}

	profile, err := s.profiles.GetByPatientID(ctx, req.PatientID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewNotFoundError("health profile missing")
		}
		return nil, err
	}

	appointment, err := s.resolveAppointment(ctx, req)
	if err != nil {
		return nil, err
	}

	if cached := s.cachedPrediction(ctx, appointment.ID); cached != nil {
		return cached, nil
	}

	reminderSent, err := s.reminders.HasReminderBeenSent(ctx, appointment.ID)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	vector, err := s.composer.Compose(profile, appointment, reminderSent)
	if err != nil {
		s.publishModelAlert(ctx, appointment.ID, req.PatientID, err)
		return nil, err
	}

	probability, willMiss, err := s.scorer.Score(vector)
	if err != nil {
		s.publishModelAlert(ctx, appointment.ID, req.PatientID, err)
		return nil, err
	}

	// Tier on full precision; the stored probability is rounded to the
	// 4 decimals the API contract exposes.
	level := RiskLevelFor(probability)

	prediction := &entities.RiskPrediction{
		ID:              uuid.New().String(),
		AppointmentID:   appointment.ID,
		PatientID:       req.PatientID,
		Probability:     round4(probability),
		WillMiss:        willMiss,
		RiskLevel:       level,
		Recommendations: Recommend(level),
		ModelVersion:    s.modelVersion,
		CreatedAt:       time.Now(),
	}

	observability.RecordPredictionMetric(ctx, s.metrics, string(level), time.Since(start))

	// Post-scoring side effects are best-effort: a persistence or bus
	// failure is reported but the computed prediction is still returned.
	if err := s.predictions.Create(ctx, prediction); err != nil {
		log.Error().Err(err).
			Str("appointment_id", appointment.ID).
			Msg("failed to persist prediction")
	} else if err := s.appointments.UpdateRisk(ctx, appointment.ID, level); err != nil {
		log.Error().Err(err).
			Str("appointment_id", appointment.ID).
			Msg("failed to update denormalized appointment risk")
	}

	s.publishScored(ctx, prediction)
	s.cachePrediction(ctx, prediction)

	return prediction, nil
}

func (s *PredictionService) resolveAppointment(ctx context.Context, req PredictionRequest) (*entities.Appointment, error) {
	// Explicit dates in the request describe the appointment directly, the
	// way the original intake flow submits them; no store lookup needed.
	if req.AppointmentID != "" && req.SchedulingDate != nil && req.AppointmentDate != nil {
		return &entities.Appointment{
			ID:            req.AppointmentID,
			PatientID:     req.PatientID,
			ScheduledOn:   *req.SchedulingDate,
			AppointmentAt: *req.AppointmentDate,
			Status:        entities.AppointmentStatusScheduled,
		}, nil
	}

	var (
		appointment *entities.Appointment
		err         error
	)
	if req.AppointmentID != "" {
		appointment, err = s.appointments.GetByID(ctx, req.AppointmentID)
	} else {
		appointment, err = s.appointments.GetActiveByPatientID(ctx, req.PatientID)
	}
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewNotFoundError("no active appointment")
		}
		return nil, err
	}
	return appointment, nil
}

func (s *PredictionService) cachedPrediction(ctx context.Context, appointmentID string) *entities.RiskPrediction {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}

	data, err := s.cache.Get(ctx, predictionCacheKey(appointmentID))
	if err != nil {
		observability.RecordCacheMiss(ctx, s.metrics)
		return nil
	}

	var prediction entities.RiskPrediction
	if err := json.Unmarshal(data, &prediction); err != nil {
		log.Warn().Err(err).Msg("discarding corrupted cached prediction")
		observability.RecordCacheMiss(ctx, s.metrics)
		return nil
	}

	observability.RecordCacheHit(ctx, s.metrics)
	return &prediction
}

func (s *PredictionService) cachePrediction(ctx context.Context, prediction *entities.RiskPrediction) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(prediction)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, predictionCacheKey(prediction.AppointmentID), data, s.cacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache prediction")
	}
}

func (s *PredictionService) publishScored(ctx context.Context, prediction *entities.RiskPrediction) {
	if s.eventBus == nil {
		return
	}

	event := entities.NewPredictionEvent(prediction)
	if err := s.eventBus.Publish(ctx, providers.EventChannelPredictions, event); err != nil {
		log.Warn().Err(err).Msg("failed to publish prediction event")
	}
	if err := s.eventBus.Publish(ctx, providers.GetPatientChannel(prediction.PatientID), event); err != nil {
		log.Warn().Err(err).Msg("failed to publish patient prediction event")
	}
}

// publishModelAlert makes artifact failures loud: they indicate a deployment
// defect, not a bad request.
func (s *PredictionService) publishModelAlert(ctx context.Context, appointmentID, patientID string, cause error) {
	log.Error().Err(cause).
		Str("appointment_id", appointmentID).
		Msg("model unavailable during scoring")

	if s.eventBus == nil {
		return
	}
	event := entities.NewModelUnavailableEvent(appointmentID, patientID)
	if err := s.eventBus.Publish(ctx, providers.EventChannelAlerts, event); err != nil {
		log.Warn().Err(err).Msg("failed to publish model alert")
	}
}

func predictionCacheKey(appointmentID string) string {
	return "prediction:" + appointmentID
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
