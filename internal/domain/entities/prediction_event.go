package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// PredictionEventType represents the type of prediction event
type PredictionEventType string

const (
	PredictionEventTypeScored           PredictionEventType = "prediction_scored"
	PredictionEventTypeModelUnavailable PredictionEventType = "model_unavailable"
)

// PredictionEvent is the real-time event published after a scoring call, so
// downstream intervention tooling can react without polling the store.
type PredictionEvent struct {
	ID            string              `json:"id"`
	EventType     PredictionEventType `json:"event_type"`
	AppointmentID string              `json:"appointment_id"`
	PatientID     string              `json:"patient_id"`
	RiskLevel     RiskLevel           `json:"risk_level,omitempty"`
	Probability   float64             `json:"probability,omitempty"`
	Timestamp     time.Time           `json:"timestamp"`
}

// NewPredictionEvent creates a scored-prediction event
func NewPredictionEvent(prediction *RiskPrediction) *PredictionEvent {
	return &PredictionEvent{
		ID:            generateEventID(),
		EventType:     PredictionEventTypeScored,
		AppointmentID: prediction.AppointmentID,
		PatientID:     prediction.PatientID,
		RiskLevel:     prediction.RiskLevel,
		Probability:   prediction.Probability,
		Timestamp:     time.Now(),
	}
}

// NewModelUnavailableEvent creates an alerting event for artifact failures
func NewModelUnavailableEvent(appointmentID, patientID string) *PredictionEvent {
	return &PredictionEvent{
		ID:            generateEventID(),
		EventType:     PredictionEventTypeModelUnavailable,
		AppointmentID: appointmentID,
		PatientID:     patientID,
		Timestamp:     time.Now(),
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
