package risk

import (
	"strconv"
	"strings"
)

// MetricsRecord is the set of physiological inputs to a single evaluation.
type MetricsRecord struct {
	Age           int     `json:"age"`
	BloodPressure string  `json:"bloodPressure"`
	Cholesterol   int     `json:"cholesterol"`
	BloodSugar    int     `json:"bloodSugar"`
	BMI           float64 `json:"bmi"`
	Smoking       bool    `json:"smoking"`
	FamilyHistory bool    `json:"familyHistory"`
}

// BloodPressure is a parsed "systolic/diastolic" reading in mmHg.
type BloodPressure struct {
	Systolic  int
	Diastolic int
}

// ParseBloodPressure parses a "systolic/diastolic" reading. Both parts must be
// positive integers; anything else is a *ValidationError.
func ParseBloodPressure(raw string) (BloodPressure, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 2 {
		return BloodPressure{}, invalidBloodPressure(raw, "expected systolic/diastolic")
	}
	systolic, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return BloodPressure{}, invalidBloodPressure(raw, "systolic is not an integer")
	}
	diastolic, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return BloodPressure{}, invalidBloodPressure(raw, "diastolic is not an integer")
	}
	if systolic <= 0 || diastolic <= 0 {
		return BloodPressure{}, invalidBloodPressure(raw, "values must be positive")
	}
	return BloodPressure{Systolic: systolic, Diastolic: diastolic}, nil
}

// String formats the reading the way it is submitted.
func (bp BloodPressure) String() string {
	return strconv.Itoa(bp.Systolic) + "/" + strconv.Itoa(bp.Diastolic)
}
