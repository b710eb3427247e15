package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
)

// HealthProfileService defines the interface for health profile operations
type HealthProfileService interface {
	Get(ctx context.Context, patientID string) (*entities.HealthProfile, error)
	Save(ctx context.Context, profile *entities.HealthProfile) error
}

// HealthProfileHandler handles health profile requests
type HealthProfileHandler struct {
	service HealthProfileService
}

// NewHealthProfileHandler creates a new health profile handler
func NewHealthProfileHandler(service HealthProfileService) *HealthProfileHandler {
	return &HealthProfileHandler{
		service: service,
	}
}

// SaveProfile handles POST /api/ml/health-profiles
func (h *HealthProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var profile entities.HealthProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.Save(r.Context(), &profile); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, profile)
}

// GetProfile handles GET /api/ml/health-profiles/{patientId}
func (h *HealthProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	patientID := r.PathValue("patientId")
	if patientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient ID is required")
		return
	}

	profile, err := h.service.Get(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}
