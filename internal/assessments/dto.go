package assessments

import "healthrisk-backend/internal/risk"

// MetricsRequest is the JSON body accepted by the assessment endpoints.
// Pointers distinguish a missing field from an explicit zero.
type MetricsRequest struct {
	Age           *int     `json:"age" binding:"required,gte=0"`
	BloodPressure string   `json:"bloodPressure" binding:"required"`
	Cholesterol   *int     `json:"cholesterol" binding:"required,gte=0"`
	BloodSugar    *int     `json:"bloodSugar" binding:"required,gte=0"`
	BMI           *float64 `json:"bmi" binding:"required,gte=0"`
	Smoking       bool     `json:"smoking"`
	FamilyHistory bool     `json:"familyHistory"`
}

// Record converts the request into an engine record.
func (r MetricsRequest) Record() risk.MetricsRecord {
	return risk.MetricsRecord{
		Age:           deref(r.Age),
		BloodPressure: r.BloodPressure,
		Cholesterol:   deref(r.Cholesterol),
		BloodSugar:    deref(r.BloodSugar),
		BMI:           deref(r.BMI),
		Smoking:       r.Smoking,
		FamilyHistory: r.FamilyHistory,
	}
}

type listItem struct {
	ID          string     `json:"id"`
	Score       int        `json:"score"`
	Level       risk.Level `json:"level"`
	GeneratedAt string     `json:"generatedAt"`
}

func deref[T int | float64](v *T) T {
	if v == nil {
		return 0
	}
	return *v
}
