package assessments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoReturnsCopies(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, Assessment{ID: "a1", UserID: "u1", Recommendations: []string{"x"}}))

	got, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	got.Recommendations[0] = "mutated"

	again, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, again.Recommendations)
}

func TestMemoryRepoListOffsetBeyondEnd(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, Assessment{ID: "a1", UserID: "u1", CreatedAt: time.Now()}))

	items, err := repo.ListByUser(ctx, "u1", 10, 5)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestMemoryRepoHonoursCancelledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Create(ctx, Assessment{ID: "a1"}), context.Canceled)
	_, err := repo.GetByID(ctx, "a1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryRepoListNewestFirstOnEqualTimestamps(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	at := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, Assessment{ID: "first", UserID: "u1", CreatedAt: at}))
	require.NoError(t, repo.Create(ctx, Assessment{ID: "second", UserID: "u1", CreatedAt: at}))
	require.NoError(t, repo.Create(ctx, Assessment{ID: "older", UserID: "u1", CreatedAt: at.Add(-time.Hour)}))

	items, err := repo.ListByUser(ctx, "u1", 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"second", "first", "older"}, []string{items[0].ID, items[1].ID, items[2].ID})
}
