package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store. Its content is lost when the process exits.
type Memory struct {
	mu     sync.RWMutex
	data   map[string]string
	limit  int
	closed bool
}

// NewMemory creates an empty in-memory store enforcing DefaultMaxValueSize.
func NewMemory() *Memory {
	return &Memory{
		data:  make(map[string]string),
		limit: DefaultMaxValueSize,
	}
}

// SetLimit changes the maximum value size. A limit <= 0 disables the check.
func (m *Memory) SetLimit(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.limit = n
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", ErrClosed
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if err := checkQuota(key, value, m.limit); err != nil {
		return err
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
