package predictions

// FeatureNames lists the model inputs in vector order.
var FeatureNames = []string{
	"Pregnancies",
	"Glucose",
	"BloodPressure",
	"SkinThickness",
	"Insulin",
	"BMI",
	"DiabetesPedigree",
	"Age",
}

// PatientData is the diabetes panel submitted for a prediction.
type PatientData struct {
	Pregnancies      *int     `json:"Pregnancies" binding:"required,gte=0"`
	Glucose          *float64 `json:"Glucose" binding:"required,gte=0"`
	BloodPressure    *float64 `json:"BloodPressure" binding:"required,gte=0"`
	SkinThickness    *float64 `json:"SkinThickness" binding:"required,gte=0"`
	Insulin          *float64 `json:"Insulin" binding:"required,gte=0"`
	BMI              *float64 `json:"BMI" binding:"required,gte=0"`
	DiabetesPedigree *float64 `json:"DiabetesPedigree" binding:"required,gte=0"`
	Age              *int     `json:"Age" binding:"required,gte=0"`
}

// Patient is the resolved form of PatientData used by the model and advisor.
type Patient struct {
	Pregnancies      int
	Glucose          float64
	BloodPressure    float64
	SkinThickness    float64
	Insulin          float64
	BMI              float64
	DiabetesPedigree float64
	Age              int
}

// Patient resolves the request; missing fields become zero.
func (d PatientData) Patient() Patient {
	return Patient{
		Pregnancies:      deref(d.Pregnancies),
		Glucose:          deref(d.Glucose),
		BloodPressure:    deref(d.BloodPressure),
		SkinThickness:    deref(d.SkinThickness),
		Insulin:          deref(d.Insulin),
		BMI:              deref(d.BMI),
		DiabetesPedigree: deref(d.DiabetesPedigree),
		Age:              deref(d.Age),
	}
}

// Vector returns the features in FeatureNames order.
func (p Patient) Vector() []float64 {
	return []float64{
		float64(p.Pregnancies),
		p.Glucose,
		p.BloodPressure,
		p.SkinThickness,
		p.Insulin,
		p.BMI,
		p.DiabetesPedigree,
		float64(p.Age),
	}
}

func deref[T int | float64](v *T) T {
	if v == nil {
		return 0
	}
	return *v
}
