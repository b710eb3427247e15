package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/consultacerta/noshow-backend/internal/application/services"
	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	"github.com/consultacerta/noshow-backend/internal/domain/repositories"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

// dateLayout is the calendar-date format accepted by the prediction API
const dateLayout = "2006-01-02"

// PredictionService defines the interface for no-show scoring operations
type PredictionService interface {
	PredictNoShow(ctx context.Context, req services.PredictionRequest) (*entities.RiskPrediction, error)
	ModelVersion() string
}

// PredictionHandler handles no-show prediction requests
type PredictionHandler struct {
	service     PredictionService
	predictions repositories.PredictionRepository
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(service PredictionService, predictions repositories.PredictionRepository) *PredictionHandler {
	return &PredictionHandler{
		service:     service,
		predictions: predictions,
	}
}

// predictRequest is the wire form of a scoring call
type predictRequest struct {
	PatientID       string `json:"patient_id"`
	AppointmentID   string `json:"appointment_id"`
	SchedulingDate  string `json:"scheduling_date"`
	AppointmentDate string `json:"appointment_date"`
}

// PredictNoShow handles POST /api/ml/predict-noshow
func (h *PredictionHandler) PredictNoShow(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.PatientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient_id is required")
		return
	}

	svcReq := services.PredictionRequest{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
	}

	if req.SchedulingDate != "" || req.AppointmentDate != "" {
		scheduled, err := time.Parse(dateLayout, req.SchedulingDate)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid scheduling_date format (use YYYY-MM-DD)")
			return
		}
		appointmentAt, err := time.Parse(dateLayout, req.AppointmentDate)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid appointment_date format (use YYYY-MM-DD)")
			return
		}
		if req.AppointmentID == "" {
			respondWithError(w, http.StatusBadRequest, "appointment_id is required with explicit dates")
			return
		}
		svcReq.SchedulingDate = &scheduled
		svcReq.AppointmentDate = &appointmentAt
	}

	prediction, err := h.service.PredictNoShow(r.Context(), svcReq)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"prediction": prediction,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// GetPrediction handles GET /api/ml/predictions/{appointmentId}
func (h *PredictionHandler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	appointmentID := r.PathValue("appointmentId")
	if appointmentID == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	prediction, err := h.predictions.GetByAppointmentID(r.Context(), appointmentID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, prediction)
}

// Health handles GET /api/ml/health
func (h *PredictionHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "online",
		"model_version": h.service.ModelVersion(),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// respondWithAppError maps the error taxonomy onto HTTP status codes
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeModelUnavailable:
			respondWithError(w, http.StatusInternalServerError, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
