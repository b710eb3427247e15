package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	"github.com/consultacerta/noshow-backend/internal/domain/providers"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

type stubProfileRepo struct {
	profile *entities.HealthProfile
	err     error
}

func (s *stubProfileRepo) GetByPatientID(ctx context.Context, patientID string) (*entities.HealthProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func (s *stubProfileRepo) Upsert(ctx context.Context, profile *entities.HealthProfile) error {
	return nil
}

type stubAppointmentRepo struct {
	appointment *entities.Appointment
	err         error
	riskUpdates map[string]entities.RiskLevel
	updateErr   error
}

func (s *stubAppointmentRepo) Create(ctx context.Context, appointment *entities.Appointment) error {
	return nil
}

func (s *stubAppointmentRepo) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.appointment, nil
}

func (s *stubAppointmentRepo) GetActiveByPatientID(ctx context.Context, patientID string) (*entities.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.appointment, nil
}

func (s *stubAppointmentRepo) UpdateRisk(ctx context.Context, id string, risk entities.RiskLevel) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if s.riskUpdates == nil {
		s.riskUpdates = make(map[string]entities.RiskLevel)
	}
	s.riskUpdates[id] = risk
	return nil
}

type stubReminderRepo struct {
	sent bool
}

func (s *stubReminderRepo) Create(ctx context.Context, reminder *entities.Reminder) error {
	return nil
}

func (s *stubReminderRepo) HasReminderBeenSent(ctx context.Context, appointmentID string) (bool, error) {
	return s.sent, nil
}

type stubPredictionRepo struct {
	created   []*entities.RiskPrediction
	createErr error
}

func (s *stubPredictionRepo) Create(ctx context.Context, prediction *entities.RiskPrediction) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, prediction)
	return nil
}

func (s *stubPredictionRepo) GetByAppointmentID(ctx context.Context, appointmentID string) (*entities.RiskPrediction, error) {
	return nil, apperrors.NewNotFoundError("not found")
}

func (s *stubPredictionRepo) ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.RiskPrediction, error) {
	return nil, nil
}

type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := c.data[key]
	if !ok {
		return nil, apperrors.NewNotFoundError("cache miss")
	}
	return v, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

var _ providers.CacheProvider = (*memoryCache)(nil)

func testProfile() *entities.HealthProfile {
	return &entities.HealthProfile{
		PatientID:    "patient-ana",
		Age:          68,
		Gender:       "F",
		Hypertension: entities.Yes,
		Diabetes:     entities.Yes,
		Alcoholism:   entities.No,
		Disability:   entities.No,
	}
}

func testAppointment() *entities.Appointment {
	return &entities.Appointment{
		ID:            "apt-1",
		PatientID:     "patient-ana",
		ScheduledOn:   date(2024, time.November, 1),
		AppointmentAt: date(2024, time.December, 15),
		Status:        entities.AppointmentStatusScheduled,
	}
}

// newTestService wires a deterministic pipeline: flat classifier with
// intercept 0.1, so every score is sigmoid(0.1) ~= 0.524979.
func newTestService(t *testing.T, profiles *stubProfileRepo, appointments *stubAppointmentRepo, reminders *stubReminderRepo, predictions *stubPredictionRepo) *PredictionService {
	t.Helper()
	composer := NewFeatureComposer(testClusterService(t), canonicalOrder)
	scorer := NewRiskScorer(identityScaler(t, 13), flatModel(t, 13, 0.1), 0.5)
	return NewPredictionService(profiles, appointments, reminders, predictions, composer, scorer, "1.0.0")
}

func TestPredictNoShow_RequiresPatientID(t *testing.T) {
	svc := newTestService(t, &stubProfileRepo{}, &stubAppointmentRepo{}, &stubReminderRepo{}, &stubPredictionRepo{})

	_, err := svc.PredictNoShow(context.Background(), PredictionRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestPredictNoShow_MissingProfile(t *testing.T) {
	profiles := &stubProfileRepo{err: apperrors.NewNotFoundError("no profile")}
	predictions := &stubPredictionRepo{}
	svc := newTestService(t, profiles, &stubAppointmentRepo{}, &stubReminderRepo{}, predictions)

	_, err := svc.PredictNoShow(context.Background(), PredictionRequest{PatientID: "ghost"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "health profile missing")
	assert.Empty(t, predictions.created)
}

func TestPredictNoShow_NoActiveAppointment(t *testing.T) {
	profiles := &stubProfileRepo{profile: testProfile()}
	appointments := &stubAppointmentRepo{err: apperrors.NewNotFoundError("none")}
	predictions := &stubPredictionRepo{}
	svc := newTestService(t, profiles, appointments, &stubReminderRepo{}, predictions)

	_, err := svc.PredictNoShow(context.Background(), PredictionRequest{PatientID: "patient-ana"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "no active appointment")
	assert.Empty(t, predictions.created)
}

func TestPredictNoShow_HappyPath(t *testing.T) {
	profiles := &stubProfileRepo{profile: testProfile()}
	appointments := &stubAppointmentRepo{appointment: testAppointment()}
	predictions := &stubPredictionRepo{}
	svc := newTestService(t, profiles, appointments, &stubReminderRepo{sent: true}, predictions)

	prediction, err := svc.PredictNoShow(context.Background(), PredictionRequest{PatientID: "patient-ana"})
	require.NoError(t, err)

	// sigmoid(0.1) = 0.52497918..., stored rounded to 4 decimals
	assert.Equal(t, 0.525, prediction.Probability)
	assert.True(t, prediction.WillMiss)
	assert.Equal(t, entities.RiskHigh, prediction.RiskLevel)
	assert.Equal(t, entities.PriorityHigh, prediction.Recommendations.Priority)
	assert.Equal(t, "apt-1", prediction.AppointmentID)
	assert.Equal(t, "patient-ana", prediction.PatientID)
	assert.Equal(t, "1.0.0", prediction.ModelVersion)
	assert.NotEmpty(t, prediction.ID)

	// Persisted and denormalized
	require.Len(t, predictions.created, 1)
	assert.Equal(t, prediction, predictions.created[0])
	assert.Equal(t, entities.RiskHigh, appointments.riskUpdates["apt-1"])
}

func TestPredictNoShow_ExplicitDatesSkipLookup(t *testing.T) {
	profiles := &stubProfileRepo{profile: testProfile()}
	// Any store lookup would fail; explicit dates must not touch it.
	appointments := &stubAppointmentRepo{err: apperrors.NewInternalError("store down", nil)}
	predictions := &stubPredictionRepo{}
	svc := newTestService(t, profiles, appointments, &stubReminderRepo{}, predictions)

	scheduled := date(2024, time.November, 1)
	appointmentAt := date(2024, time.December, 15)
	prediction, err := svc.PredictNoShow(context.Background(), PredictionRequest{
		PatientID:       "patient-ana",
		AppointmentID:   "apt-explicit",
		SchedulingDate:  &scheduled,
		AppointmentDate: &appointmentAt,
	})
	require.NoError(t, err)
	assert.Equal(t, "apt-explicit", prediction.AppointmentID)
}

func TestPredictNoShow_PersistFailureStillReturnsPrediction(t *testing.T) {
	profiles := &stubProfileRepo{profile: testProfile()}
	appointments := &stubAppointmentRepo{appointment: testAppointment()}
	predictions := &stubPredictionRepo{createErr: apperrors.NewInternalError("db down", nil)}
	svc := newTestService(t, profiles, appointments, &stubReminderRepo{}, predictions)

	prediction, err := svc.PredictNoShow(context.Background(), PredictionRequest{PatientID: "patient-ana"})
	require.NoError(t, err)
	assert.Equal(t, 0.525, prediction.Probability)
	// Denormalized risk update is skipped when the persist fails
	assert.Empty(t, appointments.riskUpdates)
}

func TestPredictNoShow_ServesCachedPrediction(t *testing.T) {
	profiles := &stubProfileRepo{profile: testProfile()}
	appointments := &stubAppointmentRepo{appointment: testAppointment()}
	predictions := &stubPredictionRepo{}
	svc := newTestService(t, profiles, appointments, &stubReminderRepo{}, predictions)

	cache := newMemoryCache()
	svc.SetCache(cache, 300)

	cached := &entities.RiskPrediction{
		ID:            "cached-id",
		AppointmentID: "apt-1",
		PatientID:     "patient-ana",
		Probability:   0.9,
		RiskLevel:     entities.RiskVeryHigh,
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, cache.Set(context.Background(), "prediction:apt-1", data, 300))

	prediction, err := svc.PredictNoShow(context.Background(), PredictionRequest{PatientID: "patient-ana"})
	require.NoError(t, err)
	assert.Equal(t, "cached-id", prediction.ID)
	// No scoring happened
	assert.Empty(t, predictions.created)
}

func TestPredictNoShow_CachesResult(t *testing.T) {
	profiles := &stubProfileRepo{profile: testProfile()}
	appointments := &stubAppointmentRepo{appointment: testAppointment()}
	svc := newTestService(t, profiles, appointments, &stubReminderRepo{}, &stubPredictionRepo{})

	cache := newMemoryCache()
	svc.SetCache(cache, 300)

	first, err := svc.PredictNoShow(context.Background(), PredictionRequest{PatientID: "patient-ana"})
	require.NoError(t, err)

	second, err := svc.PredictNoShow(context.Background(), PredictionRequest{PatientID: "patient-ana"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
