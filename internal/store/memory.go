package store

import "sync"

// Memory is a map-backed KV for tests and ephemeral runs. Nothing survives
// the process.
type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte

	// FailWrites makes every Put report an error, for exercising the
	// fail-soft save path.
	FailWrites bool
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errFailWrites
	}
	m.slots[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Close() error { return nil }
