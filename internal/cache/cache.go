package cache

import "sync"

// Store is the cache collaborator boundary: string keys, opaque bytes,
// best effort. An implementation backed by an unavailable cache should
// report misses and swallow writes, so callers degrade to recomputing
// rather than failing.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	DeleteMulti(keys ...string)
}

// Memory is a process-local Store.
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string][]byte)}
}

func (c *Memory) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *Memory) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
}

func (c *Memory) DeleteMulti(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.m, k)
	}
}
