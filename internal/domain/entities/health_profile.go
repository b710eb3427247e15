package entities

import (
	"time"
)

// YesNo is the source encoding used by the patient-facing questionnaire
// ("S"/"N" columns in the clinical store). The feature composer maps it to
// the 0/1 encoding the model was trained on.
type YesNo string

const (
	Yes YesNo = "S"
	No  YesNo = "N"
)

// HealthProfile is the immutable health snapshot of a patient at prediction
// time. One profile per patient; absence is a valid state and means the
// patient has not filled the questionnaire yet.
type HealthProfile struct {
	PatientID      string    `json:"patient_id" db:"patient_id"`
	Age            int       `json:"age" db:"age"`
	Gender         string    `json:"gender" db:"gender"` // "M" or "F"
	Hypertension   YesNo     `json:"hypertension" db:"hypertension"`
	Diabetes       YesNo     `json:"diabetes" db:"diabetes"`
	Alcoholism     YesNo     `json:"alcoholism" db:"alcoholism"`
	Disability     YesNo     `json:"disability" db:"disability"`
	DisabilityType *string   `json:"disability_type,omitempty" db:"disability_type"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
