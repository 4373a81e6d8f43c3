package predictions

import (
	"context"

	"healthrisk-backend/internal/shared/metrics"
	"healthrisk-backend/internal/shared/telemetry"
)

// Prediction is the response of the model-backed path.
type Prediction struct {
	Risk           string `json:"risk"`
	Recommendation string `json:"recommendation"`
}

type Service struct {
	Model   *ClusterModel
	Advisor Advisor
}

func NewService(model *ClusterModel, advisor Advisor) *Service {
	return &Service{Model: model, Advisor: advisor}
}

// ModelLoaded reports whether a usable cluster model is present.
func (s *Service) ModelLoaded() bool {
	return s != nil && s.Model.Validate() == nil
}

// Predict classifies the patient and asks the advisor for recommendations.
func (s *Service) Predict(ctx context.Context, patient Patient) (Prediction, error) {
	if s == nil || s.Model == nil {
		return Prediction{}, ErrModelUnavailable
	}
	risk, err := s.Model.Classify(patient)
	if err != nil {
		return Prediction{}, err
	}
	metrics.IncPrediction(risk)

	recommendation := FallbackRecommendation
	if s.Advisor != nil {
		recommendation = s.Advisor.Recommend(ctx, risk, patient)
	}
	telemetry.Info("prediction.complete", map[string]any{
		"risk":          risk,
		"model_version": s.Model.Version,
		"fallback":      recommendation == FallbackRecommendation,
	})
	return Prediction{Risk: risk, Recommendation: recommendation}, nil
}
