package entities

import (
	"fmt"
)

// Canonical feature names, as stored in the model artifact's feature order.
const (
	FeatureGender       = "Gender"
	FeatureAge          = "Age"
	FeatureHypertension = "Hypertension"
	FeatureDiabetes     = "Diabetes"
	FeatureAlcoholism   = "Alcoholism"
	FeatureHandicap     = "Handicap"
	FeatureSMSReceived  = "SMS_received"
	FeatureDaysLeadTime = "days_lead_time"
	FeatureWeekday      = "weekday"
	FeatureIsWeekend    = "is_weekend"
	FeatureCluster1     = "cluster_1"
	FeatureCluster2     = "cluster_2"
	FeatureCluster3     = "cluster_3"
)

// FeatureVector is an ordered set of named numeric features. The order is the
// model artifact's configured feature order; the scorer consumes Values
// positionally, so the two slices always correspond index for index.
type FeatureVector struct {
	Names  []string
	Values []float64
}

// NewFeatureVector assembles a vector in the given order from named values.
// Every name in the order must be present; extra entries in byName are an
// error so a drifted composer cannot silently feed the model.
func NewFeatureVector(order []string, byName map[string]float64) (*FeatureVector, error) {
	if len(byName) != len(order) {
		return nil, fmt.Errorf("feature count mismatch: composed %d, order expects %d", len(byName), len(order))
	}

	values := make([]float64, len(order))
	for i, name := range order {
		v, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("missing feature %q", name)
		}
		values[i] = v
	}

	return &FeatureVector{
		Names:  append([]string(nil), order...),
		Values: values,
	}, nil
}

// Get returns the value of a named feature, for inspection and tests.
func (v *FeatureVector) Get(name string) (float64, bool) {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i], true
		}
	}
	return 0, false
}

// Dim returns the vector dimensionality.
func (v *FeatureVector) Dim() int {
	return len(v.Values)
}
