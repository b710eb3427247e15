package evaluation

import "fmt"

// GateConfig holds minimum quality levels a model build must meet before it
// ships. Zero values disable the corresponding gate.
type GateConfig struct {
	MinAccuracy float64
	MinRecall   float64
	MinF1       float64
}

type Gates struct {
	config GateConfig
}

func NewGates(config GateConfig) *Gates {
	return &Gates{config: config}
}

// Check returns one message per failed gate. An empty slice means the summary
// clears every configured gate.
func (g *Gates) Check(s *Summary) []string {
	var failures []string

	if g.config.MinAccuracy > 0 && s.Accuracy < g.config.MinAccuracy {
		failures = append(failures, fmt.Sprintf("accuracy %.4f below minimum %.4f", s.Accuracy, g.config.MinAccuracy))
	}
	if g.config.MinRecall > 0 && s.Recall < g.config.MinRecall {
		failures = append(failures, fmt.Sprintf("recall %.4f below minimum %.4f", s.Recall, g.config.MinRecall))
	}
	if g.config.MinF1 > 0 && s.F1 < g.config.MinF1 {
		failures = append(failures, fmt.Sprintf("f1 %.4f below minimum %.4f", s.F1, g.config.MinF1))
	}

	return failures
}
