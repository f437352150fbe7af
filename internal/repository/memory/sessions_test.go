package memory

import (
	"context"
	"testing"
	"time"

	"github.com/kurochkinivan/article_cleanup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestRepository() (*SessionsRepository, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}

	r := NewSessionsRepository()
	r.now = clock.Now

	return r, clock
}

func TestSessionsRepository_SaveAndGet(t *testing.T) {
	t.Parallel()

	r, clock := newTestRepository()
	ctx := context.Background()

	table := domain.NewTable([]string{"Title"}, domain.Row{"A"})
	require.NoError(t, r.SaveSession(ctx, &domain.Session{ID: "s1", Filename: "sheet.csv", Table: table}))

	got, err := r.Session(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, "sheet.csv", got.Filename)
	assert.Same(t, table, got.Table)
	assert.Equal(t, clock.now, got.CreatedAt)
	assert.Equal(t, clock.now, got.UpdatedAt)
}

func TestSessionsRepository_ReplaceKeepsCreatedAt(t *testing.T) {
	t.Parallel()

	r, clock := newTestRepository()
	ctx := context.Background()

	created := clock.now
	require.NoError(t, r.SaveSession(ctx, &domain.Session{ID: "s1", Filename: "first.csv"}))

	clock.now = clock.now.Add(time.Minute)
	require.NoError(t, r.SaveSession(ctx, &domain.Session{ID: "s1", Filename: "second.csv"}))

	got, err := r.Session(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, "second.csv", got.Filename)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, clock.now, got.UpdatedAt)
	assert.Equal(t, 1, r.Len())
}

func TestSessionsRepository_NotFound(t *testing.T) {
	t.Parallel()

	r, _ := newTestRepository()

	_, err := r.Session(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionsRepository_Delete(t *testing.T) {
	t.Parallel()

	r, _ := newTestRepository()
	ctx := context.Background()

	require.NoError(t, r.SaveSession(ctx, &domain.Session{ID: "s1"}))
	require.NoError(t, r.DeleteSession(ctx, "s1"))
	require.NoError(t, r.DeleteSession(ctx, "never-saved"))

	_, err := r.Session(ctx, "s1")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionsRepository_DeleteExpiredSessions(t *testing.T) {
	t.Parallel()

	r, clock := newTestRepository()
	ctx := context.Background()

	require.NoError(t, r.SaveSession(ctx, &domain.Session{ID: "idle"}))
	require.NoError(t, r.SaveSession(ctx, &domain.Session{ID: "used"}))

	clock.now = clock.now.Add(10 * time.Minute)
	_, err := r.Session(ctx, "used")
	require.NoError(t, err)

	deleted, err := r.DeleteExpiredSessions(ctx, clock.now.Add(-5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = r.Session(ctx, "idle")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = r.Session(ctx, "used")
	require.NoError(t, err)
}

func TestSessionsRepository_CanceledContext(t *testing.T) {
	t.Parallel()

	r, _ := newTestRepository()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, r.SaveSession(ctx, &domain.Session{ID: "s1"}), context.Canceled)
	assert.Zero(t, r.Len())
}
