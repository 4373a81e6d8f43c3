package risk

import "time"

// Report is the output of one evaluation.
type Report struct {
	Score           int       `json:"score"`
	Level           Level     `json:"level"`
	Recommendations []string  `json:"recommendations"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// Assessor composes scoring, classification and recommendations into a Report.
// It holds only a clock and is safe for concurrent use.
type Assessor struct {
	now func() time.Time
}

// NewAssessor builds an Assessor stamping reports with now. A nil clock uses
// time.Now in UTC.
func NewAssessor(now func() time.Time) *Assessor {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Assessor{now: now}
}

// Assess evaluates the record. On a ValidationError no report is produced.
func (a *Assessor) Assess(record MetricsRecord) (Report, error) {
	bp, err := ParseBloodPressure(record.BloodPressure)
	if err != nil {
		return Report{}, err
	}
	score := scoreParsed(record, bp)
	return Report{
		Score:           score,
		Level:           Classify(score),
		Recommendations: recommendParsed(record, bp, score),
		GeneratedAt:     a.now(),
	}, nil
}

var defaultAssessor = NewAssessor(nil)

// Assess evaluates the record with the wall clock.
func Assess(record MetricsRecord) (Report, error) {
	return defaultAssessor.Assess(record)
}
