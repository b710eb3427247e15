package entities

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a scheduled medical appointment. NoShowRisk is the
// denormalized tier of the latest prediction, updated when a prediction is
// persisted.
type Appointment struct {
	ID            string            `json:"id" db:"id"`
	PatientID     string            `json:"patient_id" db:"patient_id"`
	ScheduledOn   time.Time         `json:"scheduled_on" db:"scheduled_on"`     // date the booking was made
	AppointmentAt time.Time         `json:"appointment_at" db:"appointment_at"` // date of the appointment itself
	Status        AppointmentStatus `json:"status" db:"status"`
	NoShowRisk    *string           `json:"no_show_risk,omitempty" db:"no_show_risk"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// Reminder records a reminder dispatch attempt for an appointment. The
// scoring pipeline only reads whether an SMS reminder has already gone out.
type Reminder struct {
	ID            string    `json:"id" db:"id"`
	AppointmentID string    `json:"appointment_id" db:"appointment_id"`
	Channel       string    `json:"channel" db:"channel"`
	Sent          YesNo     `json:"sent" db:"sent"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
