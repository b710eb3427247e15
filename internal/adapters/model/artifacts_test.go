package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/consultacerta/noshow-backend/pkg/errors"
)

var testFeatures = []string{
	"Gender", "Age", "Hypertension", "Diabetes", "Alcoholism", "Handicap",
	"SMS_received", "days_lead_time", "weekday", "is_weekend",
	"cluster_1", "cluster_2", "cluster_3",
}

func writeArtifact(t *testing.T, dir, name string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

// writeValidArtifacts lays out a consistent bundle in dir; individual tests
// overwrite one file to corrupt the piece under test.
func writeValidArtifacts(t *testing.T, dir string) {
	t.Helper()

	ones := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = 1
		}
		return out
	}

	writeArtifact(t, dir, "config.json", map[string]interface{}{
		"features":      testFeatures,
		"threshold":     0.5,
		"model_version": "2.1.0",
	})
	writeArtifact(t, dir, "noshow_model.json", map[string]interface{}{
		"coefficients": make([]float64, 13),
		"intercept":    0.25,
		"classes":      []int{0, 1},
	})
	writeArtifact(t, dir, "clustering_model.json", map[string]interface{}{
		"centroids": [][]float64{
			make([]float64, 5), ones(5),
			{2, 2, 2, 2, 2}, {3, 3, 3, 3, 3},
		},
	})
	writeArtifact(t, dir, "scaler.json", map[string]interface{}{
		"mean": make([]float64, 13), "scale": ones(13),
	})
	writeArtifact(t, dir, "clustering_scaler.json", map[string]interface{}{
		"mean": make([]float64, 5), "scale": ones(5),
	})
}

func TestLoadBundle_HappyPath(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)

	bundle, err := LoadBundle(dir, -1)
	require.NoError(t, err)

	assert.Equal(t, testFeatures, bundle.FeatureOrder())
	assert.Equal(t, 0.5, bundle.Threshold())
	assert.Equal(t, "2.1.0", bundle.Version())
	assert.Equal(t, 13, bundle.NoShowScaler().Dim())
	assert.Equal(t, 4, bundle.Clustering().NumClusters())
	assert.Equal(t, 5, bundle.ClusteringScaler().Dim())
}

func TestLoadBundle_ThresholdOverride(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)

	bundle, err := LoadBundle(dir, 0.65)
	require.NoError(t, err)
	assert.Equal(t, 0.65, bundle.Threshold())

	// Out-of-range override keeps the artifact's threshold
	bundle, err = LoadBundle(dir, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, bundle.Threshold())
}

func TestLoadBundle_MissingArtifact(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "clustering_scaler.json")))

	_, err := LoadBundle(dir, -1)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeModelUnavailable))
}

func TestLoadBundle_CorruptedArtifact(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "noshow_model.json"), []byte("{not json"), 0o644))

	_, err := LoadBundle(dir, -1)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeModelUnavailable))
}

func TestLoadBundle_ClassifierDimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)
	writeArtifact(t, dir, "noshow_model.json", map[string]interface{}{
		"coefficients": make([]float64, 12),
		"intercept":    0.0,
		"classes":      []int{0, 1},
	})

	_, err := LoadBundle(dir, -1)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeModelUnavailable))
}

func TestLoadBundle_ThresholdOutOfRange(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)
	writeArtifact(t, dir, "config.json", map[string]interface{}{
		"features":      testFeatures,
		"threshold":     1.5,
		"model_version": "2.1.0",
	})

	_, err := LoadBundle(dir, -1)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeModelUnavailable))
}

func TestLoadBundle_ZeroScaleRejected(t *testing.T) {
	dir := t.TempDir()
	writeValidArtifacts(t, dir)
	scale := make([]float64, 13)
	for i := range scale {
		scale[i] = 1
	}
	scale[3] = 0
	writeArtifact(t, dir, "scaler.json", map[string]interface{}{
		"mean": make([]float64, 13), "scale": scale,
	})

	_, err := LoadBundle(dir, -1)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeModelUnavailable))
}
