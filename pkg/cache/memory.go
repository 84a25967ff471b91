package cache

import (
	"context"
	"encoding/json"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemorySize = 10_000

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process cache with per-entry expiry and LRU eviction.
// Values are stored JSON-encoded so callers observe the same copy semantics
// as with Redis.
type Memory struct {
	lru *lru.Cache[string, memoryEntry]
	now func() time.Time
}

// NewMemory creates a cache holding at most size entries.
func NewMemory(size int) *Memory {
	if size <= 0 {
		size = defaultMemorySize
	}
	// Expiry is tracked per entry, so a size-bounded LRU is all that is needed.
	// lru.New only fails for a non-positive size.
	c, _ := lru.New[string, memoryEntry](size)
	return &Memory{lru: c, now: time.Now}
}

func (m *Memory) lookup(key string) (memoryEntry, bool) {
	e, ok := m.lru.Get(key)
	if !ok {
		return memoryEntry{}, false
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		m.lru.Remove(key)
		return memoryEntry{}, false
	}
	return e, true
}

func (m *Memory) Get(_ context.Context, key string, dest any) error {
	e, ok := m.lookup(key)
	if !ok {
		return ErrMiss
	}
	return json.Unmarshal(e.data, dest)
}

func (m *Memory) Set(_ context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	e := memoryEntry{data: data}
	if expiration > 0 {
		e.expiresAt = m.now().Add(expiration)
	}
	m.lru.Add(key, e)
	return nil
}

func (m *Memory) TTL(_ context.Context, key string) (time.Duration, error) {
	e, ok := m.lookup(key)
	if !ok {
		return 0, ErrMiss
	}
	if e.expiresAt.IsZero() {
		return 0, nil
	}
	return e.expiresAt.Sub(m.now()), nil
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

func (m *Memory) Close() error {
	m.lru.Purge()
	return nil
}
