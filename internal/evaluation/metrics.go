package evaluation

// ConfusionMatrix accumulates binary classification outcomes. The positive
// class is "patient misses the appointment".
type ConfusionMatrix struct {
	TruePositives  int
	FalsePositives int
	TrueNegatives  int
	FalseNegatives int
}

// Add records one prediction/outcome pair.
func (m *ConfusionMatrix) Add(predicted, actual bool) {
	switch {
	case predicted && actual:
		m.TruePositives++
	case predicted && !actual:
		m.FalsePositives++
	case !predicted && !actual:
		m.TrueNegatives++
	default:
		m.FalseNegatives++
	}
}

// Total returns the number of recorded outcomes.
func (m *ConfusionMatrix) Total() int {
	return m.TruePositives + m.FalsePositives + m.TrueNegatives + m.FalseNegatives
}

// Accuracy returns the fraction of correct predictions. Returns 0.0 when
// nothing has been recorded.
func (m *ConfusionMatrix) Accuracy() float64 {
	total := m.Total()
	if total == 0 {
		return 0.0
	}
	return float64(m.TruePositives+m.TrueNegatives) / float64(total)
}

// Precision returns TP / (TP + FP). Returns 0.0 when no positive predictions
// were made.
func (m *ConfusionMatrix) Precision() float64 {
	denom := m.TruePositives + m.FalsePositives
	if denom == 0 {
		return 0.0
	}
	return float64(m.TruePositives) / float64(denom)
}

// Recall returns TP / (TP + FN). Returns 0.0 when there were no actual
// positives.
func (m *ConfusionMatrix) Recall() float64 {
	denom := m.TruePositives + m.FalseNegatives
	if denom == 0 {
		return 0.0
	}
	return float64(m.TruePositives) / float64(denom)
}

// F1 returns the harmonic mean of precision and recall. Returns 0.0 when both
// are zero.
func (m *ConfusionMatrix) F1() float64 {
	p := m.Precision()
	r := m.Recall()
	if p+r == 0 {
		return 0.0
	}
	return 2 * p * r / (p + r)
}
