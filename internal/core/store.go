package core

import "sync"

// Store persists integer values across sessions: best scores and boolean
// preferences (0 or 1). Implementations swallow their own failures; a
// missing or unreadable value reports ok == false.
type Store interface {
	Get(key string) (int, bool)
	Set(key string, value int)
	// SetMax stores value unless the stored value is already larger.
	SetMax(key string, value int)
}

// MemoryStore is a Store kept in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int)}
}

// Get returns the stored value for key.
func (m *MemoryStore) Get(key string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key.
func (m *MemoryStore) Set(key string, value int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]int)
	}
	m.values[key] = value
}

// SetMax raises the value under key to at least value.
func (m *MemoryStore) SetMax(key string, value int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]int)
	}
	if v, ok := m.values[key]; !ok || value > v {
		m.values[key] = value
	}
}

// ReadCount reads a non-negative counter such as a best score.
// Missing or negative values read as 0.
func ReadCount(s Store, key string) int {
	if s == nil {
		return 0
	}
	v, ok := s.Get(key)
	if !ok || v < 0 {
		return 0
	}
	return v
}

// ReadFlag reads a boolean preference, returning def when it was never stored.
func ReadFlag(s Store, key string, def bool) bool {
	if s == nil {
		return def
	}
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	return v != 0
}

// WriteFlag stores a boolean preference as 0 or 1.
func WriteFlag(s Store, key string, on bool) {
	if s == nil {
		return
	}
	v := 0
	if on {
		v = 1
	}
	s.Set(key, v)
}
