// Package cache is a read-through cache for composed responses. It is purely
// an optimization: entries are invalidated on every write to the resource.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Cache stores JSON-encoded values under string keys with a TTL.
type Cache interface {
	Get(ctx context.Context, key string, target any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type memoryItem struct {
	data       []byte
	expiration int64
}

// Memory is the in-process backend with periodic expiry cleanup.
type Memory struct {
	items map[string]memoryItem
	mu    sync.RWMutex
}

func NewMemory() *Memory {
	m := &Memory{items: make(map[string]memoryItem)}
	go m.cleanupExpired()
	return m
}

func (m *Memory) Get(_ context.Context, key string, target any) (bool, error) {
	m.mu.RLock()
	item, found := m.items[key]
	m.mu.RUnlock()

	if !found || time.Now().UnixNano() > item.expiration {
		return false, nil
	}
	if err := json.Unmarshal(item.data, target); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items[key] = memoryItem{
		data:       data,
		expiration: time.Now().Add(ttl).UnixNano(),
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.items, key)
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) DeleteByPrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			delete(m.items, key)
		}
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now().UnixNano()
		m.mu.Lock()
		for key, item := range m.items {
			if now > item.expiration {
				delete(m.items, key)
			}
		}
		m.mu.Unlock()
	}
}
