package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultacerta/noshow-backend/internal/api/handlers"
	"github.com/consultacerta/noshow-backend/internal/application/services"
	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

type stubPredictionService struct {
	prediction *entities.RiskPrediction
	err        error
	lastReq    services.PredictionRequest
}

func (s *stubPredictionService) PredictNoShow(ctx context.Context, req services.PredictionRequest) (*entities.RiskPrediction, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.prediction, nil
}

func (s *stubPredictionService) ModelVersion() string {
	return "2.1.0"
}

type stubPredictionStore struct {
	prediction *entities.RiskPrediction
	err        error
}

func (s *stubPredictionStore) Create(ctx context.Context, prediction *entities.RiskPrediction) error {
	return nil
}

func (s *stubPredictionStore) GetByAppointmentID(ctx context.Context, appointmentID string) (*entities.RiskPrediction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.prediction, nil
}

func (s *stubPredictionStore) ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.RiskPrediction, error) {
	return nil, nil
}

func samplePrediction() *entities.RiskPrediction {
	return &entities.RiskPrediction{
		ID:            "pred-1",
		AppointmentID: "apt-1",
		PatientID:     "patient-ana",
		Probability:   0.525,
		WillMiss:      true,
		RiskLevel:     entities.RiskHigh,
		Recommendations: entities.RecommendationBundle{
			Reminders: 2,
			Channels:  []string{"Email", "SMS"},
			Actions:   []string{"Tutorial passo-a-passo", "Chatbot disponível"},
			Priority:  entities.PriorityHigh,
		},
		ModelVersion: "2.1.0",
	}
}

func TestPredictNoShow_Success(t *testing.T) {
	service := &stubPredictionService{prediction: samplePrediction()}
	handler := handlers.NewPredictionHandler(service, &stubPredictionStore{})

	body := `{"patient_id":"patient-ana"}`
	req := httptest.NewRequest("POST", "/api/ml/predict-noshow", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.PredictNoShow(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, true, response["success"])
	assert.NotEmpty(t, response["timestamp"])

	prediction := response["prediction"].(map[string]interface{})
	assert.Equal(t, 0.525, prediction["probability"])
	assert.Equal(t, "ALTO", prediction["risk_level"])
}

func TestPredictNoShow_ExplicitDates(t *testing.T) {
	service := &stubPredictionService{prediction: samplePrediction()}
	handler := handlers.NewPredictionHandler(service, &stubPredictionStore{})

	body := `{"patient_id":"patient-ana","appointment_id":"apt-1","scheduling_date":"2024-11-01","appointment_date":"2024-12-15"}`
	req := httptest.NewRequest("POST", "/api/ml/predict-noshow", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.PredictNoShow(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, service.lastReq.SchedulingDate)
	require.NotNil(t, service.lastReq.AppointmentDate)
	assert.Equal(t, "2024-11-01", service.lastReq.SchedulingDate.Format("2006-01-02"))
	assert.Equal(t, "2024-12-15", service.lastReq.AppointmentDate.Format("2006-01-02"))
}

func TestPredictNoShow_InvalidPayload(t *testing.T) {
	handler := handlers.NewPredictionHandler(&stubPredictionService{}, &stubPredictionStore{})

	req := httptest.NewRequest("POST", "/api/ml/predict-noshow", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.PredictNoShow(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictNoShow_MissingPatientID(t *testing.T) {
	handler := handlers.NewPredictionHandler(&stubPredictionService{}, &stubPredictionStore{})

	req := httptest.NewRequest("POST", "/api/ml/predict-noshow", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler.PredictNoShow(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictNoShow_BadDateFormat(t *testing.T) {
	handler := handlers.NewPredictionHandler(&stubPredictionService{}, &stubPredictionStore{})

	body := `{"patient_id":"p","appointment_id":"a","scheduling_date":"01/11/2024","appointment_date":"2024-12-15"}`
	req := httptest.NewRequest("POST", "/api/ml/predict-noshow", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.PredictNoShow(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictNoShow_NotFound(t *testing.T) {
	service := &stubPredictionService{err: apperrors.NewNotFoundError("health profile missing")}
	handler := handlers.NewPredictionHandler(service, &stubPredictionStore{})

	req := httptest.NewRequest("POST", "/api/ml/predict-noshow", strings.NewReader(`{"patient_id":"ghost"}`))
	w := httptest.NewRecorder()

	handler.PredictNoShow(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "health profile missing", response["error"])
}

func TestPredictNoShow_ModelUnavailable(t *testing.T) {
	service := &stubPredictionService{err: apperrors.NewModelUnavailableError("artifact corrupted", nil)}
	handler := handlers.NewPredictionHandler(service, &stubPredictionStore{})

	req := httptest.NewRequest("POST", "/api/ml/predict-noshow", strings.NewReader(`{"patient_id":"patient-ana"}`))
	w := httptest.NewRecorder()

	handler.PredictNoShow(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetPrediction_Success(t *testing.T) {
	store := &stubPredictionStore{prediction: samplePrediction()}
	handler := handlers.NewPredictionHandler(&stubPredictionService{}, store)

	req := httptest.NewRequest("GET", "/api/ml/predictions/apt-1", nil)
	req.SetPathValue("appointmentId", "apt-1")
	w := httptest.NewRecorder()

	handler.GetPrediction(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var prediction entities.RiskPrediction
	require.NoError(t, json.NewDecoder(w.Body).Decode(&prediction))
	assert.Equal(t, "pred-1", prediction.ID)
}

func TestGetPrediction_NotFound(t *testing.T) {
	store := &stubPredictionStore{err: apperrors.NewNotFoundError("no prediction for appointment")}
	handler := handlers.NewPredictionHandler(&stubPredictionService{}, store)

	req := httptest.NewRequest("GET", "/api/ml/predictions/apt-unknown", nil)
	req.SetPathValue("appointmentId", "apt-unknown")
	w := httptest.NewRecorder()

	handler.GetPrediction(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	handler := handlers.NewPredictionHandler(&stubPredictionService{}, &stubPredictionStore{})

	req := httptest.NewRequest("GET", "/api/ml/health", nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "online", response["status"])
	assert.Equal(t, "2.1.0", response["model_version"])
}
