package assessments

import (
	"time"

	"healthrisk-backend/internal/risk"
)

// Assessment is a persisted report together with the metrics that produced it.
type Assessment struct {
	ID              string             `json:"id"`
	UserID          string             `json:"userId"`
	Metrics         risk.MetricsRecord `json:"metrics"`
	Score           int                `json:"score"`
	Level           risk.Level         `json:"level"`
	Recommendations []string           `json:"recommendations"`
	GeneratedAt     time.Time          `json:"generatedAt"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// Report returns the engine view of the stored assessment.
func (a Assessment) Report() risk.Report {
	recs := make([]string, len(a.Recommendations))
	copy(recs, a.Recommendations)
	return risk.Report{
		Score:           a.Score,
		Level:           a.Level,
		Recommendations: recs,
		GeneratedAt:     a.GeneratedAt,
	}
}
