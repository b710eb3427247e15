package evaluation

import (
	"time"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
)

// GoldenCase represents a labeled historical appointment with its observed
// attendance outcome.
type GoldenCase struct {
	ID              string `json:"id"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	Hypertension    string `json:"hypertension"`
	Diabetes        string `json:"diabetes"`
	Alcoholism      string `json:"alcoholism"`
	Disability      string `json:"disability"`
	SchedulingDate  string `json:"scheduling_date"`
	AppointmentDate string `json:"appointment_date"`
	ReminderSent    bool   `json:"reminder_sent"`
	NoShow          bool   `json:"no_show"` // observed outcome
}

// CaseResult holds the evaluation outcome for a single labeled case.
type CaseResult struct {
	CaseID      string
	Probability float64
	Predicted   bool
	Actual      bool
	RiskLevel   entities.RiskLevel
	Latency     time.Duration
}

// Summary holds aggregate metrics across all golden cases.
type Summary struct {
	TotalCases  int
	ScoredCases int
	FailedCases int
	Confusion   ConfusionMatrix
	Accuracy    float64
	Precision   float64
	Recall      float64
	F1          float64
	AvgLatency  time.Duration
	ByRiskLevel map[entities.RiskLevel]*LevelSummary
}

// LevelSummary holds metrics grouped by assigned risk tier. ObservedRate is
// the fraction of cases in the tier that actually missed; a calibrated model
// should show it increasing with the tier.
type LevelSummary struct {
	Count        int
	NoShows      int
	ObservedRate float64
}
