package providers

// The pretrained predictors are opaque capabilities: callers hand over an
// already-standardized vector and get a label or probability back. Artifact
// format (coefficients, centroids, serialization) stays behind these
// interfaces.

// Scaler applies the per-feature standardization fitted at training time
// (subtract stored mean, divide by stored scale).
type Scaler interface {
	// Transform standardizes a vector. Errors on dimensionality mismatch.
	Transform(vector []float64) ([]float64, error)

	// Dim returns the dimensionality the scaler was fitted on.
	Dim() int
}

// ClusterModel assigns a standardized health vector to one cluster from the
// fixed label set established at training time.
type ClusterModel interface {
	// Predict returns the cluster id for a standardized vector.
	// Deterministic: identical input always yields the identical id.
	Predict(standardized []float64) (int, error)

	// NumClusters returns the cardinality of the label set.
	NumClusters() int
}

// NoShowModel is the pretrained binary classifier.
type NoShowModel interface {
	// PredictProba returns the probability of the positive ("will miss")
	// class for a standardized vector.
	PredictProba(standardized []float64) (float64, error)

	// Dim returns the input dimensionality the model was trained on.
	Dim() int
}

// ModelBundle is the process-lifetime, read-only set of pretrained artifacts
// and their configuration. Loaded once at startup and shared across
// concurrent requests without locking; nothing mutates it post-load.
type ModelBundle interface {
	NoShow() NoShowModel
	NoShowScaler() Scaler
	Clustering() ClusterModel
	ClusteringScaler() Scaler

	// FeatureOrder returns the configured ordered feature names the
	// no-show model consumes.
	FeatureOrder() []string

	// Threshold returns the decision threshold in [0,1].
	Threshold() float64

	// Version returns the model bundle version string.
	Version() string
}
