package assessments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthrisk-backend/internal/risk"
	"healthrisk-backend/internal/shared/metrics"
	"healthrisk-backend/internal/shared/telemetry"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Service runs the risk engine and keeps per-user assessment history.
type Service struct {
	Repo     Repo
	Assessor *risk.Assessor
	NewID    func() string
	Now      func() time.Time
}

// NewService constructs a Service with the wall clock and random IDs.
func NewService(repo Repo, assessor *risk.Assessor) *Service {
	if assessor == nil {
		assessor = risk.NewAssessor(nil)
	}
	return &Service{Repo: repo, Assessor: assessor}
}

// Preview evaluates a record without storing it.
func (s *Service) Preview(ctx context.Context, record risk.MetricsRecord) (risk.Report, error) {
	if err := ctx.Err(); err != nil {
		return risk.Report{}, err
	}
	return s.evaluate(record, "")
}

// Create evaluates a record and stores the result under userID.
func (s *Service) Create(ctx context.Context, userID string, record risk.MetricsRecord) (Assessment, error) {
	if s == nil || s.Repo == nil {
		return Assessment{}, ErrNotConfigured
	}
	if strings.TrimSpace(userID) == "" {
		return Assessment{}, ErrUserRequired
	}

	id := s.newID()
	report, err := s.evaluate(record, id)
	if err != nil {
		return Assessment{}, err
	}

	assessment := Assessment{
		ID:              id,
		UserID:          userID,
		Metrics:         record,
		Score:           report.Score,
		Level:           report.Level,
		Recommendations: report.Recommendations,
		GeneratedAt:     report.GeneratedAt,
		CreatedAt:       s.now(),
	}
	if err := s.Repo.Create(ctx, assessment); err != nil {
		telemetry.Error("assessment.persist_failed", map[string]any{
			"assessment_id": id,
			"user_id":       userID,
			"error":         err,
		})
		return Assessment{}, err
	}
	return assessment, nil
}

// Get returns an assessment owned by userID. Assessments of other users are
// reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, userID, assessmentID string) (Assessment, error) {
	if s == nil || s.Repo == nil {
		return Assessment{}, ErrNotConfigured
	}
	if strings.TrimSpace(assessmentID) == "" {
		return Assessment{}, ErrNotFound
	}
	assessment, err := s.Repo.GetByID(ctx, assessmentID)
	if err != nil {
		return Assessment{}, err
	}
	if assessment.UserID != userID {
		return Assessment{}, ErrNotFound
	}
	return assessment, nil
}

// List returns the user's assessments, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Assessment, error) {
	if s == nil || s.Repo == nil {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserRequired
	}
	return s.Repo.ListByUser(ctx, userID, clampLimit(limit), max(offset, 0))
}

func (s *Service) evaluate(record risk.MetricsRecord, assessmentID string) (risk.Report, error) {
	assessor := s.Assessor
	if assessor == nil {
		assessor = risk.NewAssessor(nil)
	}
	report, err := assessor.Assess(record)
	if err != nil {
		var verr *risk.ValidationError
		if errors.As(err, &verr) {
			metrics.IncValidationError()
			telemetry.Warn("assessment.rejected", map[string]any{
				"field":  verr.Field,
				"reason": verr.Reason,
			})
		}
		return risk.Report{}, err
	}

	metrics.ObserveAssessment(report.Level.String(), report.Score)
	fields := map[string]any{
		"score":           report.Score,
		"level":           report.Level.String(),
		"recommendations": len(report.Recommendations),
	}
	if assessmentID != "" {
		fields["assessment_id"] = assessmentID
	}
	telemetry.Info("assessment.scored", fields)
	return report, nil
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
