package draft

import "sync"

// MemoryStore keeps drafts in process memory. It backs tests and sessions
// that do not configure a database path.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Save(key string, d Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = Encode(d)
	return nil
}

func (m *MemoryStore) Load(key string) (Draft, bool) {
	m.mu.RLock()
	raw, ok := m.values[key]
	m.mu.RUnlock()
	if !ok {
		return Draft{}, false
	}
	return Decode(raw)
}

func (m *MemoryStore) Clear(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
