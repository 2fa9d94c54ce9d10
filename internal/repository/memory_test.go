package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumire/bugs/internal/domain"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func strp(s string) *string { return &s }

func TestMemoryBugRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo := NewMemoryBugRepository().WithClock(clock.now)

	created, err := repo.Create(ctx, domain.Bug{
		Title:       "Bug",
		Description: "Desc",
		Status:      domain.StatusOpen,
		Severity:    domain.SeverityMedium,
		AssignedTo:  domain.DefaultAssignee,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *found)

	status := domain.StatusResolved
	updated, err := repo.Update(ctx, created.ID, domain.BugPayload{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, updated.Status)
	assert.Equal(t, "Bug", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrNotFound)

	_, err = repo.Update(ctx, created.ID, domain.BugPayload{Title: strp("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryBugRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo := NewMemoryBugRepository().WithClock(clock.now)

	bugs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bugs)

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, domain.Bug{Title: title, Description: "d"})
		require.NoError(t, err)
	}

	bugs, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, bugs, 3)
	assert.Equal(t, "third", bugs[0].Title)
	assert.Equal(t, "second", bugs[1].Title)
	assert.Equal(t, "first", bugs[2].Title)
}

func TestMemoryBugRepository_ListSameInstantUsesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryBugRepository().WithClock(func() time.Time { return fixed })

	for _, title := range []string{"a", "b"} {
		_, err := repo.Create(ctx, domain.Bug{Title: title, Description: "d"})
		require.NoError(t, err)
	}

	bugs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, bugs, 2)
	assert.Equal(t, "b", bugs[0].Title)
	assert.Equal(t, "a", bugs[1].Title)
}

func TestMemoryBugRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBugRepository()

	created, err := repo.Create(ctx, domain.Bug{Title: "orig", Description: "d"})
	require.NoError(t, err)
	created.Title = "mutated"

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "orig", found.Title)
}
