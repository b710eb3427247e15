package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGates_AllPass(t *testing.T) {
	gates := NewGates(GateConfig{MinAccuracy: 0.7, MinRecall: 0.6, MinF1: 0.6})
	summary := &Summary{Accuracy: 0.8, Recall: 0.75, F1: 0.77}

	assert.Empty(t, gates.Check(summary))
}

func TestGates_Failures(t *testing.T) {
	gates := NewGates(GateConfig{MinAccuracy: 0.9, MinRecall: 0.8, MinF1: 0.8})
	summary := &Summary{Accuracy: 0.8, Recall: 0.85, F1: 0.7}

	failures := gates.Check(summary)
	assert.Len(t, failures, 2)
	assert.Contains(t, failures[0], "accuracy")
	assert.Contains(t, failures[1], "f1")
}

func TestGates_ZeroConfigDisablesAll(t *testing.T) {
	gates := NewGates(GateConfig{})
	summary := &Summary{Accuracy: 0, Recall: 0, F1: 0}

	assert.Empty(t, gates.Check(summary))
}
