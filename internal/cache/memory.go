package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	expiresAt time.Time
	body      []byte
}

type memoryPath struct {
	generation int64
	entries    map[string]memoryEntry
}

// MemoryCache is a process-local PageCache used when no Redis address is configured.
type MemoryCache struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
	paths map[string]*memoryPath
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryCache{
		ttl:   ttl,
		now:   func() time.Time { return time.Now().UTC() },
		paths: make(map[string]*memoryPath),
	}
}

func (c *MemoryCache) Get(_ context.Context, path, query string) ([]byte, int64, bool) {
	c.mu.RLock()
	p, ok := c.paths[path]
	if !ok {
		c.mu.RUnlock()
		return nil, 0, false
	}
	gen := p.generation
	entry, ok := p.entries[query]
	c.mu.RUnlock()

	if !ok {
		return nil, gen, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		if cur, ok := p.entries[query]; ok && !c.now().Before(cur.expiresAt) {
			delete(p.entries, query)
		}
		c.mu.Unlock()
		return nil, gen, false
	}
	return append([]byte(nil), entry.body...), gen, true
}

func (c *MemoryCache) Set(_ context.Context, path, query string, generation int64, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.path(path)
	if p.generation != generation {
		return
	}
	p.entries[query] = memoryEntry{
		expiresAt: c.now().Add(c.ttl),
		body:      append([]byte(nil), body...),
	}
}

func (c *MemoryCache) Revalidate(_ context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.path(path)
	p.generation++
	p.entries = make(map[string]memoryEntry)
	return nil
}

func (c *MemoryCache) path(path string) *memoryPath {
	p, ok := c.paths[path]
	if !ok {
		p = &memoryPath{entries: make(map[string]memoryEntry)}
		c.paths[path] = p
	}
	return p
}
