package providers

import (
	"context"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// prediction events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.PredictionEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.PredictionEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event types
const (
	// EventChannelPredictions is the channel for all scored predictions
	EventChannelPredictions = "predictions:scored"

	// EventChannelAlerts is the channel for model availability alerts
	EventChannelAlerts = "predictions:alerts"

	// EventChannelPatientPrefix is the prefix for patient-specific channels
	EventChannelPatientPrefix = "predictions:patient:"
)

// GetPatientChannel returns the channel name for a specific patient
func GetPatientChannel(patientID string) string {
	return EventChannelPatientPrefix + patientID
}
