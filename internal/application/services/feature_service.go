package services

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/consultacerta/noshow-backend/internal/domain/entities"
)

// Source-encoding lookup tables, matching the encodings the model was
// trained on. Values outside the known set map to 0; see composeCategorical.
var (
	yesNoMap  = map[entities.YesNo]float64{entities.Yes: 1, entities.No: 0}
	genderMap = map[string]float64{"M": 0, "F": 1}
)

// FeatureComposer builds the canonical ordered feature vector for the
// no-show classifier: the basic demographic, clinical, reminder and temporal
// fields plus one-hot cluster dummies obtained from the cluster service. The
// risk scorer never sees clustering; it is folded in here as just another
// feature input.
type FeatureComposer struct {
	clusters *ClusterService
	order    []string
}

// NewFeatureComposer creates a new feature composer producing vectors in the
// given configured feature order.
func NewFeatureComposer(clusters *ClusterService, order []string) *FeatureComposer {
	return &FeatureComposer{
		clusters: clusters,
		order:    order,
	}
}

// Compose builds the feature vector for one prediction. It is a total
// function of its inputs; the only failure mode is a clustering artifact
// failure, which propagates unchanged.
func (c *FeatureComposer) Compose(profile *entities.HealthProfile, appointment *entities.Appointment, reminderSent bool) (*entities.FeatureVector, error) {
	gender := composeCategorical("gender", string(profile.Gender), genderMap, profile.PatientID)
	hypertension := composeYesNo("hypertension", profile.Hypertension, profile.PatientID)
	diabetes := composeYesNo("diabetes", profile.Diabetes, profile.PatientID)
	alcoholism := composeYesNo("alcoholism", profile.Alcoholism, profile.PatientID)
	disability := composeYesNo("disability", profile.Disability, profile.PatientID)

	smsReceived := 0.0
	if reminderSent {
		smsReceived = 1.0
	}

	leadTime := daysBetween(appointment.ScheduledOn, appointment.AppointmentAt)
	weekday := isoWeekday(appointment.AppointmentAt)
	isWeekend := 0.0
	if weekday >= 5 {
		isWeekend = 1.0
	}

	// The clustering subset excludes gender; order fixed at training time.
	cluster, err := c.clusters.Assign([]float64{
		float64(profile.Age),
		hypertension,
		diabetes,
		alcoholism,
		disability,
	})
	if err != nil {
		return nil, err
	}

	byName := map[string]float64{
		entities.FeatureGender:       gender,
		entities.FeatureAge:          float64(profile.Age),
		entities.FeatureHypertension: hypertension,
		entities.FeatureDiabetes:     diabetes,
		entities.FeatureAlcoholism:   alcoholism,
		entities.FeatureHandicap:     disability,
		entities.FeatureSMSReceived:  smsReceived,
		entities.FeatureDaysLeadTime: float64(leadTime),
		entities.FeatureWeekday:      float64(weekday),
		entities.FeatureIsWeekend:    isWeekend,
	}

	// One-hot cluster dummies; cluster 0 is the baseline with none set.
	byName[entities.FeatureCluster1] = oneHot(cluster, 1)
	byName[entities.FeatureCluster2] = oneHot(cluster, 2)
	byName[entities.FeatureCluster3] = oneHot(cluster, 3)

	return entities.NewFeatureVector(c.order, byName)
}

func oneHot(cluster, dummy int) float64 {
	if cluster == dummy {
		return 1.0
	}
	return 0.0
}

func composeYesNo(field string, value entities.YesNo, patientID string) float64 {
	if v, ok := yesNoMap[value]; ok {
		return v
	}
	// Unknown values default to 0 to match the trained encoding, but are
	// logged so masked data problems stay visible.
	log.Warn().
		Str("patient_id", patientID).
		Str("field", field).
		Str("value", string(value)).
		Msg("unknown categorical value, defaulting to 0")
	return 0
}

func composeCategorical(field, value string, table map[string]float64, patientID string) float64 {
	if v, ok := table[value]; ok {
		return v
	}
	log.Warn().
		Str("patient_id", patientID).
		Str("field", field).
		Str("value", value).
		Msg("unknown categorical value, defaulting to 0")
	return 0
}

// daysBetween returns whole calendar days from a to b. Negative when the
// appointment date precedes the scheduling date; inconsistent data passes
// through unclamped.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// isoWeekday maps Go's Sunday=0 convention to the Monday=0 index the model
// was trained with.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
