package records

import (
	"context"
	"maps"
	"slices"
	"sync"
)

type Memory struct {
	mu   sync.RWMutex
	best map[string]int
}

func NewMemory() *Memory {
	return &Memory{best: make(map[string]int)}
}

func (m *Memory) Best(ctx context.Context, level string) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.best[level]
	return v, ok, nil
}

func (m *Memory) Submit(ctx context.Context, level string, seconds int) (bool, error) {
	if err := validate(level, seconds); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.best[level]; ok && seconds >= v {
		return false, nil
	}
	m.best[level] = seconds
	return true, nil
}

func (m *Memory) All(ctx context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]Entry, 0, len(m.best))
	for _, level := range slices.Sorted(maps.Keys(m.best)) {
		entries = append(entries, Entry{Level: level, BestSeconds: m.best[level]})
	}
	return entries, nil
}

func (m *Memory) Delete(ctx context.Context, level string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.best, level)
	return nil
}

func (m *Memory) Close() error {
	return nil
}

var _ Store = (*Memory)(nil)
