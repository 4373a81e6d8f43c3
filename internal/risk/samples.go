package risk

import "strings"

// Sample patient names, as offered by the demo form.
const (
	SampleLowRisk      = "lowRisk"
	SampleModerateRisk = "moderateRisk"
	SampleHighRisk     = "highRisk"
)

// SampleNames lists the samples in display order.
var SampleNames = []string{SampleLowRisk, SampleModerateRisk, SampleHighRisk}

// Samples returns a fresh copy of the demo patients keyed by name.
func Samples() map[string]MetricsRecord {
	return map[string]MetricsRecord{
		SampleLowRisk: {
			Age:           32,
			BloodPressure: "110/75",
			Cholesterol:   180,
			BloodSugar:    95,
			BMI:           22.3,
		},
		SampleModerateRisk: {
			Age:           45,
			BloodPressure: "130/85",
			Cholesterol:   210,
			BloodSugar:    120,
			BMI:           27.5,
			FamilyHistory: true,
		},
		SampleHighRisk: {
			Age:           58,
			BloodPressure: "150/95",
			Cholesterol:   260,
			BloodSugar:    145,
			BMI:           32.1,
			Smoking:       true,
			FamilyHistory: true,
		},
	}
}

// Sample looks up a demo patient. Short names ("low", "moderate", "high") are
// accepted as well.
func Sample(name string) (MetricsRecord, bool) {
	key := strings.TrimSpace(name)
	switch strings.ToLower(key) {
	case "low":
		key = SampleLowRisk
	case "moderate":
		key = SampleModerateRisk
	case "high":
		key = SampleHighRisk
	}
	record, ok := Samples()[key]
	return record, ok
}
