// Package sessions keeps live game sessions in memory, keyed by a random id.
// Idle sessions expire and the least recently used one is dropped when the
// registry is full.
package sessions

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNotFound = errors.New("session not found")

type Registry struct {
	mu     sync.Mutex
	logger *slog.Logger
	cache  *expirable.LRU[string, *mines.Session]
	opts   []mines.SessionOption
}

// New creates a registry holding at most capacity sessions, each evicted ttl
// after its last use. opts are applied to every session it creates.
func New(logger *slog.Logger, capacity int, ttl time.Duration, opts ...mines.SessionOption) *Registry {
	r := &Registry{logger: logger, opts: opts}
	r.cache = expirable.NewLRU[string, *mines.Session](capacity, r.onEvict, ttl)
	return r
}

func (r *Registry) onEvict(id string, s *mines.Session) {
	s.Quit()
	r.logger.Debug("session evicted", slog.String("id", id))
}

func (r *Registry) Create(params mines.GameParams) (string, *mines.Session, error) {
	s, err := mines.NewSession(params, r.opts...)
	if err != nil {
		return "", nil, err
	}
	id := uuid.NewString()
	r.mu.Lock()
	r.cache.Add(id, s)
	r.mu.Unlock()
	return id, s, nil
}

func (r *Registry) Get(id string) (*mines.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *Registry) get(id string) (*mines.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	s, ok := r.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	// refresh the expiry on use
	r.cache.Add(id, s)
	return s, nil
}

// Restart replaces the session under id with a fresh one of the same level.
// The old session is abandoned.
func (r *Registry) Restart(id string) (*mines.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, err := r.get(id)
	if err != nil {
		return nil, err
	}
	fresh, err := old.Restart()
	if err != nil {
		return nil, err
	}
	old.Quit()
	r.cache.Add(id, fresh)
	return fresh, nil
}

// Remove abandons the session and forgets it.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.cache.Remove(id) {
		return ErrNotFound
	}
	return nil
}

func (r *Registry) Len() int {
	return r.cache.Len()
}

// Close abandons every live session.
func (r *Registry) Close() {
	r.cache.Purge()
}
