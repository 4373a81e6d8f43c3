package predictions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func highRiskPatient() Patient {
	return Patient{
		Pregnancies: 5, Glucose: 190, BloodPressure: 90, SkinThickness: 40,
		Insulin: 150, BMI: 35.0, DiabetesPedigree: 0.9, Age: 50,
	}
}

func lowRiskPatient() Patient {
	return Patient{
		Pregnancies: 1, Glucose: 85, BloodPressure: 66, SkinThickness: 29,
		Insulin: 0, BMI: 26.6, DiabetesPedigree: 0.351, Age: 31,
	}
}

func TestDefaultModelIsValid(t *testing.T) {
	require.NoError(t, DefaultModel().Validate())
}

func TestDefaultModelClassifiesReferencePatients(t *testing.T) {
	m := DefaultModel()

	risk, err := m.Classify(highRiskPatient())
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, risk)

	risk, err = m.Classify(lowRiskPatient())
	require.NoError(t, err)
	assert.Equal(t, RiskLow, risk)
}

func TestPredictScalesBeforeDistance(t *testing.T) {
	m := &ClusterModel{
		Mean:      []float64{0, 100, 0, 0, 0, 0, 0, 0},
		Scale:     []float64{1, 50, 1, 1, 1, 1, 1, 1},
		Centroids: [][]float64{{0, 0, 0, 0, 0, 0, 0, 0}, {0, 2, 0, 0, 0, 0, 0, 0}},
	}
	// Glucose 180 scales to 1.6, closer to the second centroid.
	cluster, err := m.Predict([]float64{0, 180, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, cluster)

	cluster, err = m.Predict([]float64{0, 140, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, cluster)
}

func TestPredictRejectsWrongLength(t *testing.T) {
	_, err := DefaultModel().Predict([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestLabelMapping(t *testing.T) {
	m := DefaultModel()
	assert.Equal(t, RiskLow, m.Label(0))
	assert.Equal(t, RiskMedium, m.Label(1))
	assert.Equal(t, RiskHigh, m.Label(2))
	assert.Equal(t, RiskUnknown, m.Label(3))
	assert.Equal(t, RiskUnknown, m.Label(-1))

	bare := &ClusterModel{}
	assert.Equal(t, RiskMedium, bare.Label(1))
	assert.Equal(t, RiskUnknown, bare.Label(7))
}

func TestLoadModelFromYAML(t *testing.T) {
	m, err := LoadModel("testdata/model.yaml")
	require.NoError(t, err)
	assert.Equal(t, "test-2", m.Version)
	require.Len(t, m.Centroids, 4)

	// Extreme inputs land on the fourth centroid, which has no label.
	risk, err := m.Classify(Patient{Glucose: 190, BloodPressure: 160, SkinThickness: 110, Insulin: 170, BMI: 75, DiabetesPedigree: 1.4, Age: 130})
	require.NoError(t, err)
	assert.Equal(t, RiskUnknown, risk)

	risk, err = m.Classify(Patient{Glucose: 130, BloodPressure: 70, SkinThickness: 20, Insulin: 80, BMI: 30, DiabetesPedigree: 0.5, Age: 50})
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, risk)
}

func TestLoadModelRejectsInvalidFiles(t *testing.T) {
	_, err := LoadModel("testdata/bad_model.yaml")
	assert.Error(t, err)

	_, err = LoadModel("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestValidateRejectsZeroScale(t *testing.T) {
	m := DefaultModel()
	m.Scale[3] = 0
	assert.ErrorContains(t, m.Validate(), "SkinThickness")
}
