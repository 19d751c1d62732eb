package task

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taskrepo "github.com/taskdeck/taskdeck/internal/task/repo"
)

func newTestService() *Service {
	return NewService(taskrepo.NewMemoryRepository())
}

func TestCreateStartsActive(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	created, err := svc.Create(context.Background(), "u1", "Buy milk")
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)
	assert.False(t, created.IsArchived)
}

func TestTitleValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{"empty", "", ErrEmptyTitle},
		{"whitespace only", "   \t\n ", ErrEmptyTitle},
		{"exactly 500", strings.Repeat("a", 500), nil},
		{"501 rejected", strings.Repeat("a", 501), ErrTitleTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "u1", tt.title)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateTrimsTitle(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	created, err := svc.Create(context.Background(), "u1", "  Buy milk  ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", created.Title)
}

func TestOwnershipIsolation(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	owned, err := svc.Create(ctx, "userA", "A's task")
	require.NoError(t, err)

	// every operation from userB behaves as not-found
	_, err = svc.Get(ctx, owned.ID, "userB")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateTitle(ctx, owned.ID, "userB", "hijacked")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.MarkComplete(ctx, owned.ID, "userB")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.MarkIncomplete(ctx, owned.ID, "userB")
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := svc.Delete(ctx, owned.ID, "userB")
	require.NoError(t, err)
	assert.False(t, deleted)

	// the owner still sees the task unchanged
	got, err := svc.Get(ctx, owned.ID, "userA")
	require.NoError(t, err)
	assert.Equal(t, "A's task", got.Title)
}

func TestCompleteIncompleteAreCoupledInverses(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", "cycle me")
	require.NoError(t, err)

	done, err := svc.MarkComplete(ctx, created.ID, "u1")
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.True(t, done.IsArchived)
	assert.Equal(t, done.Completed, done.IsArchived)

	active, err := svc.MarkIncomplete(ctx, created.ID, "u1")
	require.NoError(t, err)
	assert.False(t, active.Completed)
	assert.False(t, active.IsArchived)
	assert.Equal(t, active.Completed, active.IsArchived)
}

func TestUpdateTitlePreservesFlags(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", "original")
	require.NoError(t, err)

	_, err = svc.MarkComplete(ctx, created.ID, "u1")
	require.NoError(t, err)

	updated, err := svc.UpdateTitle(ctx, created.ID, "u1", "renamed")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.True(t, updated.Completed)
	assert.True(t, updated.IsArchived)
}

func TestListFiltersAndOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "u1", "first")
	require.NoError(t, err)
	second, err := svc.Create(ctx, "u1", "second")
	require.NoError(t, err)
	third, err := svc.Create(ctx, "u1", "third")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", "someone else's")
	require.NoError(t, err)

	_, err = svc.MarkComplete(ctx, second.ID, "u1")
	require.NoError(t, err)

	// default list: newest first, completed rows hidden, other users invisible
	tasks, err := svc.List(ctx, "u1", false, false)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, third.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)

	// include both flags: all three come back
	tasks, err = svc.List(ctx, "u1", true, true)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", "doomed")
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID, "u1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, created.ID, "u1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestTaskLifecycleScenario(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", "Buy milk")
	require.NoError(t, err)
	assert.False(t, created.Completed)
	assert.False(t, created.IsArchived)

	done, err := svc.MarkComplete(ctx, created.ID, "u1")
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.True(t, done.IsArchived)

	tasks, err := svc.List(ctx, "u1", false, false)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = svc.MarkIncomplete(ctx, created.ID, "u1")
	require.NoError(t, err)

	tasks, err = svc.List(ctx, "u1", false, false)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)

	deleted, err := svc.Delete(ctx, created.ID, "u1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.Get(ctx, created.ID, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}
