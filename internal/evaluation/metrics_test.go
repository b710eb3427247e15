package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfusionMatrix_Counts(t *testing.T) {
	var m ConfusionMatrix
	m.Add(true, true)   // TP
	m.Add(true, true)   // TP
	m.Add(true, false)  // FP
	m.Add(false, false) // TN
	m.Add(false, true)  // FN

	assert.Equal(t, 2, m.TruePositives)
	assert.Equal(t, 1, m.FalsePositives)
	assert.Equal(t, 1, m.TrueNegatives)
	assert.Equal(t, 1, m.FalseNegatives)
	assert.Equal(t, 5, m.Total())
}

func TestConfusionMatrix_Metrics(t *testing.T) {
	m := ConfusionMatrix{
		TruePositives:  6,
		FalsePositives: 2,
		TrueNegatives:  10,
		FalseNegatives: 2,
	}

	assert.InDelta(t, 0.8, m.Accuracy(), 1e-12)
	assert.InDelta(t, 0.75, m.Precision(), 1e-12)
	assert.InDelta(t, 0.75, m.Recall(), 1e-12)
	assert.InDelta(t, 0.75, m.F1(), 1e-12)
}

func TestConfusionMatrix_EmptyIsZero(t *testing.T) {
	var m ConfusionMatrix
	assert.Equal(t, 0.0, m.Accuracy())
	assert.Equal(t, 0.0, m.Precision())
	assert.Equal(t, 0.0, m.Recall())
	assert.Equal(t, 0.0, m.F1())
}

func TestConfusionMatrix_NoPositivePredictions(t *testing.T) {
	m := ConfusionMatrix{TrueNegatives: 5, FalseNegatives: 5}
	assert.Equal(t, 0.0, m.Precision())
	assert.Equal(t, 0.0, m.Recall())
	assert.Equal(t, 0.0, m.F1())
	assert.Equal(t, 0.5, m.Accuracy())
}
