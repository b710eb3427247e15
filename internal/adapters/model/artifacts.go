package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/consultacerta/noshow-backend/internal/domain/providers"
	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

// Artifact file names inside the model directory, as produced by the offline
// training pipeline.
const (
	noShowModelFile     = "noshow_model.json"
	clusteringModelFile = "clustering_model.json"
	noShowScalerFile    = "scaler.json"
	clusteringScalerFile = "clustering_scaler.json"
	bundleConfigFile    = "config.json"
)

type logisticArtifact struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Classes      []int     `json:"classes"`
}

type kmeansArtifact struct {
	Centroids [][]float64 `json:"centroids"`
}

type scalerArtifact struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

type bundleConfig struct {
	Features     []string `json:"features"`
	Threshold    float64  `json:"threshold"`
	ModelVersion string   `json:"model_version"`
}

// Bundle is the loaded, immutable set of pretrained artifacts. Safe for
// concurrent use; nothing mutates it after LoadBundle returns.
type Bundle struct {
	noShow           *LogisticModel
	noShowScaler     *StandardScaler
	clustering       *KMeansModel
	clusteringScaler *StandardScaler
	featureOrder     []string
	threshold        float64
	version          string
}

// LoadBundle reads and cross-validates all artifacts from dir. Any missing,
// corrupted or dimensionally inconsistent artifact fails the load with a
// MODEL_UNAVAILABLE error, so the process refuses to start rather than fail
// at first prediction. thresholdOverride in [0,1] replaces the artifact's
// decision threshold; pass a negative value to keep it.
func LoadBundle(dir string, thresholdOverride float64) (*Bundle, error) {
	var cfg bundleConfig
	if err := readArtifact(dir, bundleConfigFile, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Features) == 0 {
		return nil, apperrors.NewModelUnavailableError("artifact config has no feature order", nil)
	}
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return nil, apperrors.NewModelUnavailableError(
			fmt.Sprintf("artifact threshold %v outside [0,1]", cfg.Threshold), nil)
	}

	var lr logisticArtifact
	if err := readArtifact(dir, noShowModelFile, &lr); err != nil {
		return nil, err
	}
	noShow, err := NewLogisticModel(lr.Coefficients, lr.Intercept)
	if err != nil {
		return nil, apperrors.NewModelUnavailableError("invalid no-show classifier artifact", err)
	}

	var km kmeansArtifact
	if err := readArtifact(dir, clusteringModelFile, &km); err != nil {
		return nil, err
	}
	clustering, err := NewKMeansModel(km.Centroids)
	if err != nil {
		return nil, apperrors.NewModelUnavailableError("invalid clustering artifact", err)
	}

	noShowScaler, err := loadScaler(dir, noShowScalerFile)
	if err != nil {
		return nil, err
	}
	clusteringScaler, err := loadScaler(dir, clusteringScalerFile)
	if err != nil {
		return nil, err
	}

	// Cross-artifact dimensionality checks against the configured order.
	if noShow.Dim() != len(cfg.Features) {
		return nil, apperrors.NewModelUnavailableError(
			fmt.Sprintf("classifier expects %d features, configured order has %d", noShow.Dim(), len(cfg.Features)), nil)
	}
	if noShowScaler.Dim() != len(cfg.Features) {
		return nil, apperrors.NewModelUnavailableError(
			fmt.Sprintf("scaler fitted on %d features, configured order has %d", noShowScaler.Dim(), len(cfg.Features)), nil)
	}
	if clusteringScaler.Dim() != len(km.Centroids[0]) {
		return nil, apperrors.NewModelUnavailableError(
			fmt.Sprintf("clustering scaler fitted on %d features, centroids have %d", clusteringScaler.Dim(), len(km.Centroids[0])), nil)
	}

	threshold := cfg.Threshold
	if thresholdOverride >= 0 && thresholdOverride <= 1 {
		threshold = thresholdOverride
	}

	return &Bundle{
		noShow:           noShow,
		noShowScaler:     noShowScaler,
		clustering:       clustering,
		clusteringScaler: clusteringScaler,
		featureOrder:     cfg.Features,
		threshold:        threshold,
		version:          cfg.ModelVersion,
	}, nil
}

func loadScaler(dir, name string) (*StandardScaler, error) {
	var raw scalerArtifact
	if err := readArtifact(dir, name, &raw); err != nil {
		return nil, err
	}
	scaler, err := NewStandardScaler(raw.Mean, raw.Scale)
	if err != nil {
		return nil, apperrors.NewModelUnavailableError(fmt.Sprintf("invalid scaler artifact %s", name), err)
	}
	return scaler, nil
}

func readArtifact(dir, name string, out interface{}) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewModelUnavailableError(fmt.Sprintf("failed to read artifact %s", name), err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.NewModelUnavailableError(fmt.Sprintf("failed to parse artifact %s", name), err)
	}
	return nil
}

// NoShow returns the pretrained binary classifier
func (b *Bundle) NoShow() providers.NoShowModel { return b.noShow }

// NoShowScaler returns the main 13-dimensional scaler
func (b *Bundle) NoShowScaler() providers.Scaler { return b.noShowScaler }

// Clustering returns the pretrained clustering predictor
func (b *Bundle) Clustering() providers.ClusterModel { return b.clustering }

// ClusteringScaler returns the health-subset scaler
func (b *Bundle) ClusteringScaler() providers.Scaler { return b.clusteringScaler }

// FeatureOrder returns the configured ordered feature names
func (b *Bundle) FeatureOrder() []string { return b.featureOrder }

// Threshold returns the decision threshold
func (b *Bundle) Threshold() float64 { return b.threshold }

// Version returns the model bundle version string
func (b *Bundle) Version() string { return b.version }

var _ providers.ModelBundle = (*Bundle)(nil)
