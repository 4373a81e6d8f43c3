package predictions

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Risk categories produced by the cluster model.
const (
	RiskLow     = "Low Risk"
	RiskMedium  = "Medium Risk"
	RiskHigh    = "High Risk"
	RiskUnknown = "Unknown Risk"
)

var ErrModelUnavailable = errors.New("risk model unavailable")

// ClusterModel is a nearest-centroid classifier over standard-scaled
// features: each input x becomes (x-mean)/scale before the closest centroid
// is picked by Euclidean distance.
type ClusterModel struct {
	Version   string         `yaml:"version"`
	Features  []string       `yaml:"features"`
	Mean      []float64      `yaml:"mean"`
	Scale     []float64      `yaml:"scale"`
	Centroids [][]float64    `yaml:"centroids"`
	Labels    map[int]string `yaml:"labels"`
}

// DefaultModel returns the built-in three-cluster model.
func DefaultModel() *ClusterModel {
	return &ClusterModel{
		Version:  "builtin-1",
		Features: append([]string(nil), FeatureNames...),
		Mean:     []float64{3.85, 120.89, 69.11, 20.54, 79.80, 31.99, 0.47, 33.24},
		Scale:    []float64{3.37, 31.95, 19.34, 15.94, 115.17, 7.88, 0.33, 11.75},
		Centroids: [][]float64{
			{-0.50, -0.60, -0.20, -0.10, -0.30, -0.50, -0.30, -0.60},
			{0.30, 0.10, 0.10, 0.00, -0.10, 0.20, 0.00, 0.40},
			{0.60, 1.40, 0.50, 0.70, 1.00, 1.00, 0.60, 0.80},
		},
		Labels: map[int]string{0: RiskLow, 1: RiskMedium, 2: RiskHigh},
	}
}

// LoadModel reads a ClusterModel from a YAML file.
func LoadModel(path string) (*ClusterModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m ClusterModel
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every vector matches the feature count and no scale is zero.
func (m *ClusterModel) Validate() error {
	if m == nil {
		return ErrModelUnavailable
	}
	n := len(FeatureNames)
	if len(m.Features) != 0 && len(m.Features) != n {
		return fmt.Errorf("model has %d features, want %d", len(m.Features), n)
	}
	for i, name := range m.Features {
		if name != FeatureNames[i] {
			return fmt.Errorf("model feature %d is %q, want %q", i, name, FeatureNames[i])
		}
	}
	if len(m.Mean) != n || len(m.Scale) != n {
		return fmt.Errorf("model mean/scale must have %d values", n)
	}
	for i, s := range m.Scale {
		if s == 0 {
			return fmt.Errorf("model scale for %s is zero", FeatureNames[i])
		}
	}
	if len(m.Centroids) == 0 {
		return errors.New("model has no centroids")
	}
	for i, c := range m.Centroids {
		if len(c) != n {
			return fmt.Errorf("centroid %d has %d values, want %d", i, len(c), n)
		}
	}
	return nil
}

// Predict returns the index of the closest centroid.
func (m *ClusterModel) Predict(features []float64) (int, error) {
	if m == nil || len(m.Centroids) == 0 {
		return 0, ErrModelUnavailable
	}
	if len(features) != len(m.Mean) {
		return 0, fmt.Errorf("expected %d features, got %d", len(m.Mean), len(features))
	}

	scaled := make([]float64, len(features))
	for i, x := range features {
		scaled[i] = (x - m.Mean[i]) / m.Scale[i]
	}

	best, bestDist := -1, math.Inf(1)
	for i, c := range m.Centroids {
		var d float64
		for j := range scaled {
			diff := scaled[j] - c[j]
			d += diff * diff
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}

// Label maps a cluster index to its risk category.
func (m *ClusterModel) Label(cluster int) string {
	if m != nil && m.Labels != nil {
		if label, ok := m.Labels[cluster]; ok {
			return label
		}
		return RiskUnknown
	}
	switch cluster {
	case 0:
		return RiskLow
	case 1:
		return RiskMedium
	case 2:
		return RiskHigh
	default:
		return RiskUnknown
	}
}

// Classify predicts the risk category for a patient.
func (m *ClusterModel) Classify(p Patient) (string, error) {
	cluster, err := m.Predict(p.Vector())
	if err != nil {
		return "", err
	}
	return m.Label(cluster), nil
}
