package repository

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// memorySweepInterval bounds how often Set scans for expired entries.
const memorySweepInterval = time.Minute

// MemoryCache is an in-process CacheRepository. Expired entries are dropped
// when read and swept from Set at most once per memorySweepInterval.
type MemoryCache struct {
	mu        sync.Mutex
	data      map[string]memoryEntry
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.data, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if !now.Before(m.nextSweep) {
		m.sweep(now)
		m.nextSweep = now.Add(memorySweepInterval)
	}

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	m.data[key] = entry
	return nil
}

// sweep deletes expired entries. Callers hold mu.
func (m *MemoryCache) sweep(now time.Time) {
	for key, entry := range m.data {
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			delete(m.data, key)
		}
	}
}

func (m *MemoryCache) Ping(context.Context) error {
	return nil
}

// Len reports the number of stored entries, expired or not.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
