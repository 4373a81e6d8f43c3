package risk

import "strings"

// Recommendation catalog.
const (
	RecSeeDoctorNow        = "Schedule a doctor's appointment immediately"
	RecBloodWorkECG        = "Consider comprehensive blood work and ECG"
	RecFollowUpMonth       = "Schedule a follow-up within 1 month"
	RecDailyBPMonitoring   = "Daily blood pressure monitoring required"
	RecReduceSodium        = "Reduce sodium intake to <1500mg/day"
	RecWeeklyBPChecks      = "Weekly blood pressure checks recommended"
	RecStatinConsult       = "Consider statin therapy after doctor consultation"
	RecSolubleFiber        = "Increase soluble fiber intake (oats, beans, apples)"
	RecUnsaturatedFats     = "Replace saturated fats with unsaturated fats"
	RecWeightLoss          = "Aim for 5-10% weight loss over 6 months"
	RecModerateExercise    = "150 minutes of moderate exercise weekly"
	RecMaintainWeight      = "Maintain weight through balanced diet"
	RecQuitSmoking         = "Quit smoking - consider nicotine replacement therapy"
	RecAnnualScreening     = "Annual comprehensive health screening recommended"
	RecMaintainHealthyLife = "Maintain current healthy lifestyle habits"
)

// Recommend returns the advice triggered by the record and its score, in
// emission order and without repeats.
func Recommend(record MetricsRecord, score int) ([]string, error) {
	bp, err := ParseBloodPressure(record.BloodPressure)
	if err != nil {
		return nil, err
	}
	return recommendParsed(record, bp, score), nil
}

func recommendParsed(record MetricsRecord, bp BloodPressure, score int) []string {
	out := make([]string, 0, 12)

	// Severity-linked advice first.
	if score > highAbove {
		out = append(out, RecSeeDoctorNow, RecBloodWorkECG)
	} else if score > moderateAbove {
		out = append(out, RecFollowUpMonth)
	}

	// Only the systolic reading drives blood pressure advice.
	if bp.Systolic > 140 {
		out = append(out, RecDailyBPMonitoring, RecReduceSodium)
	} else if bp.Systolic > 120 {
		out = append(out, RecWeeklyBPChecks)
	}

	if record.Cholesterol > 240 {
		out = append(out, RecStatinConsult, RecSolubleFiber)
	} else if record.Cholesterol > 200 {
		out = append(out, RecUnsaturatedFats)
	}

	if record.BMI > 30 {
		out = append(out, RecWeightLoss, RecModerateExercise)
	} else if record.BMI > 25 {
		out = append(out, RecMaintainWeight)
	}

	if record.Smoking {
		out = append(out, RecQuitSmoking)
	}
	if record.FamilyHistory {
		out = append(out, RecAnnualScreening)
	}

	// Strictly below the Moderate boundary, so a score of exactly 40 gets no
	// reinforcement message.
	if score < moderateAbove {
		out = append(out, RecMaintainHealthyLife)
	}

	return dedupe(out)
}

// dedupe keeps the first occurrence of each recommendation.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.TrimSpace(item)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
