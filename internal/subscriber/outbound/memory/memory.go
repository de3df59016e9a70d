// Package memory keeps subscribers in process memory.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/shandysiswandi/reqguard/internal/subscriber/entity"
)

type Memory struct {
	mu      sync.RWMutex
	byID    map[string]entity.Subscriber
	byEmail map[string]string
	order   []string
}

func New() *Memory {
	return &Memory{
		byID:    make(map[string]entity.Subscriber),
		byEmail: make(map[string]string),
	}
}

func (m *Memory) Create(_ context.Context, sub entity.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(sub.Email)
	if _, taken := m.byEmail[email]; taken {
		return entity.ErrEmailTaken
	}

	m.byID[sub.ID] = sub
	m.byEmail[email] = sub.ID
	m.order = append(m.order, sub.ID)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*entity.Subscriber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, ok := m.byID[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &sub, nil
}

// List returns one page of subscribers in insertion order and the total count.
func (m *Memory) List(_ context.Context, offset, limit int) ([]entity.Subscriber, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := len(m.order)
	if offset >= total {
		return []entity.Subscriber{}, total, nil
	}

	ids := m.order[offset:min(offset+limit, total)]
	out := make([]entity.Subscriber, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.byID[id])
	}
	return out, total, nil
}
