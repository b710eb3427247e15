package services

import (
	"github.com/consultacerta/noshow-backend/internal/domain/entities"
)

// recommendationTable maps each risk tier to its intervention bundle.
// Channel and action ordering is part of the downstream contract.
var recommendationTable = map[entities.RiskLevel]entities.RecommendationBundle{
	entities.RiskVeryHigh: {
		Reminders: 3,
		Channels:  []string{"SMS", "Email", "WhatsApp"},
		Actions:   []string{"Tutorial em vídeo", "Chatbot proativo", "Ligação telefônica"},
		Priority:  entities.PriorityCritical,
	},
	entities.RiskHigh: {
		Reminders: 2,
		Channels:  []string{"Email", "SMS"},
		Actions:   []string{"Tutorial passo-a-passo", "Chatbot disponível"},
		Priority:  entities.PriorityHigh,
	},
	entities.RiskMedium: {
		Reminders: 2,
		Channels:  []string{"Email", "SMS"},
		Actions:   []string{"Lembrete com FAQ"},
		Priority:  entities.PriorityMedium,
	},
	entities.RiskLow: {
		Reminders: 1,
		Channels:  []string{"Email"},
		Actions:   []string{"Lembrete padrão"},
		Priority:  entities.PriorityLow,
	},
}

// Recommend returns the intervention bundle for a risk tier. A tier without
// an entry (unreachable through RiskLevelFor) falls back to the MEDIO bundle.
// The returned bundle is a copy; callers may not mutate the table through it.
func Recommend(level entities.RiskLevel) entities.RecommendationBundle {
	bundle, ok := recommendationTable[level]
	if !ok {
		bundle = recommendationTable[entities.RiskMedium]
	}
	return entities.RecommendationBundle{
		Reminders: bundle.Reminders,
		Channels:  append([]string(nil), bundle.Channels...),
		Actions:   append([]string(nil), bundle.Actions...),
		Priority:  bundle.Priority,
	}
}
