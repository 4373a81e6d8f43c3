package risk

// MaxScore is the upper bound of a risk score.
const MaxScore = 100

// Factor names one row of the point table.
type Factor string

const (
	FactorAge           Factor = "age"
	FactorBloodPressure Factor = "bloodPressure"
	FactorCholesterol   Factor = "cholesterol"
	FactorBloodSugar    Factor = "bloodSugar"
	FactorBMI           Factor = "bmi"
	FactorSmoking       Factor = "smoking"
	FactorFamilyHistory Factor = "familyHistory"
)

// Contribution is the number of points a single factor added to the score.
type Contribution struct {
	Factor Factor `json:"factor"`
	Points int    `json:"points"`
}

// Score evaluates the additive point table for the record and clamps the sum
// to MaxScore.
func Score(record MetricsRecord) (int, error) {
	bp, err := ParseBloodPressure(record.BloodPressure)
	if err != nil {
		return 0, err
	}
	return scoreParsed(record, bp), nil
}

// Breakdown returns every factor's contribution in table order, including
// factors that contributed nothing. The sum is not clamped.
func Breakdown(record MetricsRecord) ([]Contribution, error) {
	bp, err := ParseBloodPressure(record.BloodPressure)
	if err != nil {
		return nil, err
	}
	return contributions(record, bp), nil
}

func scoreParsed(record MetricsRecord, bp BloodPressure) int {
	score := 0
	for _, c := range contributions(record, bp) {
		score += c.Points
	}
	if score > MaxScore {
		score = MaxScore
	}
	return score
}

func contributions(record MetricsRecord, bp BloodPressure) []Contribution {
	return []Contribution{
		{Factor: FactorAge, Points: agePoints(record.Age)},
		{Factor: FactorBloodPressure, Points: bloodPressurePoints(bp)},
		{Factor: FactorCholesterol, Points: cholesterolPoints(record.Cholesterol)},
		{Factor: FactorBloodSugar, Points: bloodSugarPoints(record.BloodSugar)},
		{Factor: FactorBMI, Points: bmiPoints(record.BMI)},
		{Factor: FactorSmoking, Points: flagPoints(record.Smoking, 15)},
		{Factor: FactorFamilyHistory, Points: flagPoints(record.FamilyHistory, 10)},
	}
}

func agePoints(age int) int {
	switch {
	case age > 60:
		return 25
	case age > 50:
		return 20
	case age > 40:
		return 15
	case age > 30:
		return 5
	default:
		return 0
	}
}

func bloodPressurePoints(bp BloodPressure) int {
	switch {
	case bp.Systolic > 160 || bp.Diastolic > 100:
		return 25
	case bp.Systolic > 140 || bp.Diastolic > 90:
		return 15
	case bp.Systolic > 120 || bp.Diastolic > 80:
		return 5
	default:
		return 0
	}
}

func cholesterolPoints(mgdl int) int {
	switch {
	case mgdl > 240:
		return 20
	case mgdl > 200:
		return 10
	default:
		return 0
	}
}

func bloodSugarPoints(mgdl int) int {
	switch {
	case mgdl > 126:
		return 20
	case mgdl > 100:
		return 10
	default:
		return 0
	}
}

func bmiPoints(bmi float64) int {
	switch {
	case bmi > 30:
		return 15
	case bmi > 25:
		return 10
	default:
		return 0
	}
}

func flagPoints(set bool, points int) int {
	if set {
		return points
	}
	return 0
}
