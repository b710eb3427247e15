package entities

import (
	"time"
)

// RiskLevel is one of four ordered risk tiers (BAIXO < MEDIO < ALTO < MUITO_ALTO).
type RiskLevel string

const (
	RiskVeryHigh RiskLevel = "MUITO_ALTO"
	RiskHigh     RiskLevel = "ALTO"
	RiskMedium   RiskLevel = "MEDIO"
	RiskLow      RiskLevel = "BAIXO"
)

// Priority labels for intervention bundles, ordered like the tiers.
type Priority string

const (
	PriorityCritical Priority = "CRITICA"
	PriorityHigh     Priority = "ALTA"
	PriorityMedium   Priority = "MEDIA"
	PriorityLow      Priority = "BAIXA"
)

// RecommendationBundle is the intervention plan for a risk tier. Fully
// determined by the tier; ordering of channels and actions is part of the
// contract.
type RecommendationBundle struct {
	Reminders int      `json:"reminders"`
	Channels  []string `json:"channels"`
	Actions   []string `json:"actions"`
	Priority  Priority `json:"priority"`
}

// RiskPrediction is the outcome of one scoring call. Created fresh per
// request and never mutated afterwards.
type RiskPrediction struct {
	ID              string               `json:"id" db:"id"`
	AppointmentID   string               `json:"appointment_id" db:"appointment_id"`
	PatientID       string               `json:"patient_id" db:"patient_id"`
	Probability     float64              `json:"probability" db:"probability"`
	WillMiss        bool                 `json:"will_miss" db:"will_miss"`
	RiskLevel       RiskLevel            `json:"risk_level" db:"risk_level"`
	Recommendations RecommendationBundle `json:"recommendations"`
	ModelVersion    string               `json:"model_version" db:"model_version"`
	CreatedAt       time.Time            `json:"created_at" db:"created_at"`
}
