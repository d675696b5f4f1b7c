package store

import (
	"context"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/cashflow/internal/slot"
)

// Memory is a process-local Store. Contents are lost on exit.
type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.slots[name]
	if !ok {
		return nil, slot.ErrNotFound
	}

	return slices.Clone(data), nil
}

func (m *Memory) Put(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[name] = slices.Clone(data)

	return nil
}
