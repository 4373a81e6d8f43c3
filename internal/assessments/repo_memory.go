package assessments

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores assessments in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Assessment
	byUser map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Assessment),
		byUser: make(map[string][]string),
	}
}

// Create stores the assessment.
func (r *MemoryRepo) Create(ctx context.Context, assessment Assessment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[assessment.ID] = clone(assessment)
	r.byUser[assessment.UserID] = append(r.byUser[assessment.UserID], assessment.ID)
	return nil
}

// GetByID returns an assessment by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, assessmentID string) (Assessment, error) {
	if err := ctx.Err(); err != nil {
		return Assessment{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	assessment, ok := r.byID[assessmentID]
	if !ok {
		return Assessment{}, ErrNotFound
	}
	return clone(assessment), nil
}

// ListByUser returns assessments for a user, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	ids := r.byUser[userID]
	items := make([]Assessment, 0, len(ids))
	// Latest insert first so equal timestamps still list newest first.
	for i := len(ids) - 1; i >= 0; i-- {
		items = append(items, clone(r.byID[ids[i]]))
	}
	r.mu.RUnlock()

	if offset >= len(items) {
		return []Assessment{}, nil
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end], nil
}

func clone(a Assessment) Assessment {
	if a.Recommendations != nil {
		recs := make([]string, len(a.Recommendations))
		copy(recs, a.Recommendations)
		a.Recommendations = recs
	}
	return a
}
