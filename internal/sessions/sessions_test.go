package sessions

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func newRegistry(capacity int, ttl time.Duration) *Registry {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), capacity, ttl)
}

func isDone(s *mines.Session) bool {
	select {
	case <-s.Done():
		return true
	default:
		return false
	}
}

func TestRegistryCreateGet(t *testing.T) {
	r := newRegistry(4, time.Hour)
	id, s, err := r.Create(mines.Beginner)
	require.NoError(t, err)

	got, err := r.Get(id)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, r.Len())

	_, err = r.Get("not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get("8b7f0c2e-3a43-4c56-9c1e-1d2b3c4d5e6f")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryRejectsInvalidParams(t *testing.T) {
	r := newRegistry(4, time.Hour)
	_, _, err := r.Create(mines.GameParams{Width: 2, Height: 2, MineCount: 4, Level: "x"})
	assert.ErrorIs(t, err, mines.ErrInvalidParams)
	assert.Zero(t, r.Len())
}

func TestRegistryRemoveQuitsSession(t *testing.T) {
	r := newRegistry(4, time.Hour)
	id, s, err := r.Create(mines.Beginner)
	require.NoError(t, err)

	require.NoError(t, r.Remove(id))
	assert.True(t, isDone(s))
	assert.ErrorIs(t, r.Remove(id), ErrNotFound)

	_, err = s.Reveal(0, 0)
	assert.ErrorIs(t, err, mines.ErrSessionOver)
}

func TestRegistryRestart(t *testing.T) {
	r := newRegistry(4, time.Hour)
	id, old, err := r.Create(mines.Intermediate)
	require.NoError(t, err)
	_, err = old.Reveal(3, 3)
	require.NoError(t, err)

	fresh, err := r.Restart(id)
	require.NoError(t, err)
	assert.NotSame(t, old, fresh)
	assert.True(t, isDone(old))
	assert.Equal(t, mines.NotStarted, fresh.Phase())
	assert.Equal(t, mines.Intermediate, fresh.Params())

	got, err := r.Get(id)
	require.NoError(t, err)
	assert.Same(t, fresh, got)
}

func TestRegistryEvictsLeastRecentlyUsed(t *testing.T) {
	r := newRegistry(2, time.Hour)
	first, s1, err := r.Create(mines.Beginner)
	require.NoError(t, err)
	second, _, err := r.Create(mines.Beginner)
	require.NoError(t, err)

	_, err = r.Get(first)
	require.NoError(t, err)

	_, _, err = r.Create(mines.Beginner)
	require.NoError(t, err)

	_, err = r.Get(second)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get(first)
	assert.NoError(t, err)
	assert.False(t, isDone(s1))
}

func TestRegistryExpires(t *testing.T) {
	r := newRegistry(4, 20*time.Millisecond)
	id, s, err := r.Create(mines.Beginner)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return isDone(s)
	}, time.Second, 5*time.Millisecond)
	_, err = r.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryClose(t *testing.T) {
	r := newRegistry(4, time.Hour)
	_, s, err := r.Create(mines.Beginner)
	require.NoError(t, err)
	r.Close()
	assert.Zero(t, r.Len())
	assert.True(t, isDone(s))
}
