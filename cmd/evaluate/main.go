package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/consultacerta/noshow-backend/internal/adapters/model"
	"github.com/consultacerta/noshow-backend/internal/application/services"
	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	"github.com/consultacerta/noshow-backend/internal/evaluation"
	"github.com/consultacerta/noshow-backend/pkg/config"
)

// pipelineScorer adapts the scoring services to evaluation.CaseScorer
type pipelineScorer struct {
	composer *services.FeatureComposer
	scorer   *services.RiskScorer
}

func (p *pipelineScorer) Score(ctx context.Context, profile *entities.HealthProfile, appointment *entities.Appointment, reminderSent bool) (float64, bool, entities.RiskLevel, error) {
	vector, err := p.composer.Compose(profile, appointment, reminderSent)
	if err != nil {
		return 0, false, "", err
	}

	probability, willMiss, err := p.scorer.Score(vector)
	if err != nil {
		return 0, false, "", err
	}

	return probability, willMiss, services.RiskLevelFor(probability), nil
}

func main() {
	casesPath := flag.String("cases", "config/golden_cases.json", "path to the labeled case set")
	reportPath := flag.String("report", "", "write the JSON summary to this file as well as stdout")
	minAccuracy := flag.Float64("min-accuracy", 0, "fail when accuracy falls below this value (0 disables)")
	minRecall := flag.Float64("min-recall", 0, "fail when recall falls below this value (0 disables)")
	minF1 := flag.Float64("min-f1", 0, "fail when F1 falls below this value (0 disables)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	bundle, err := model.LoadBundle(cfg.Model.Dir, cfg.Model.ThresholdOverride)
	if err != nil {
		log.Fatal().Err(err).Str("model_dir", cfg.Model.Dir).Msg("failed to load model bundle")
	}

	cases, err := evaluation.LoadGoldenCases(*casesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load golden cases")
	}
	if err := evaluation.ValidateGoldenCases(cases); err != nil {
		log.Fatal().Err(err).Msg("invalid golden cases")
	}

	clusterService := services.NewClusterService(bundle.ClusteringScaler(), bundle.Clustering())
	scorer := &pipelineScorer{
		composer: services.NewFeatureComposer(clusterService, bundle.FeatureOrder()),
		scorer:   services.NewRiskScorer(bundle.NoShowScaler(), bundle.NoShow(), bundle.Threshold()),
	}

	runner := evaluation.NewRunner(scorer)
	summary, err := runner.Run(context.Background(), cases)
	if err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}

	// Output results as JSON
	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))

	if *reportPath != "" {
		if err := os.WriteFile(*reportPath, out, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", *reportPath).Msg("failed to write report")
		}
	}

	gates := evaluation.NewGates(evaluation.GateConfig{
		MinAccuracy: *minAccuracy,
		MinRecall:   *minRecall,
		MinF1:       *minF1,
	})
	if failures := gates.Check(summary); len(failures) > 0 {
		for _, failure := range failures {
			log.Error().Msg(failure)
		}
		os.Exit(1)
	}
}
