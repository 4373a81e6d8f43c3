package assessments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"healthrisk-backend/internal/risk"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, metrics, score, level, recommendations, generated_at, created_at`

// Create inserts a new assessment.
func (r *PGRepo) Create(ctx context.Context, assessment Assessment) error {
	const query = `
INSERT INTO assessments (id, user_id, metrics, score, level, recommendations, generated_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	metricsPayload, err := json.Marshal(assessment.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	recs := assessment.Recommendations
	if recs == nil {
		recs = []string{}
	}
	recsPayload, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		assessment.ID,
		assessment.UserID,
		metricsPayload,
		assessment.Score,
		string(assessment.Level),
		recsPayload,
		assessment.GeneratedAt,
		assessment.CreatedAt,
	)
	return err
}

// GetByID returns an assessment by ID.
func (r *PGRepo) GetByID(ctx context.Context, assessmentID string) (Assessment, error) {
	query := `SELECT ` + selectColumns + `
FROM assessments
WHERE id = $1
LIMIT 1`
	a, err := scanAssessment(r.DB.QueryRowContext(ctx, query, assessmentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assessment{}, ErrNotFound
		}
		return Assessment{}, err
	}
	return a, nil
}

// ListByUser returns a user's assessments, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Assessment, error) {
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + selectColumns + `
FROM assessments
WHERE user_id = $1
ORDER BY created_at DESC
OFFSET $2`
	args := []any{userID, offset}
	if limit > 0 {
		query += `
LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Assessment{}
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (Assessment, error) {
	var a Assessment
	var metricsRaw []byte
	var recsRaw []byte
	var level string
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&metricsRaw,
		&a.Score,
		&level,
		&recsRaw,
		&a.GeneratedAt,
		&a.CreatedAt,
	); err != nil {
		return Assessment{}, err
	}
	if err := json.Unmarshal(metricsRaw, &a.Metrics); err != nil {
		return Assessment{}, fmt.Errorf("decode metrics: %w", err)
	}
	a.Recommendations = []string{}
	if len(recsRaw) > 0 {
		if err := json.Unmarshal(recsRaw, &a.Recommendations); err != nil {
			return Assessment{}, fmt.Errorf("decode recommendations: %w", err)
		}
	}
	parsed, err := risk.ParseLevel(level)
	if err != nil {
		return Assessment{}, err
	}
	a.Level = parsed
	return a, nil
}
