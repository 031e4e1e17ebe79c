package api

import (
	"sync"
	"time"
)

type replyEntry struct {
	value string
	ts    time.Time
}

// replyCache memoizes generated replies keyed by normalized question text.
// Expiry is a read-time check: an entry past its TTL is treated as absent
// and removed on the lookup that finds it, not by a background sweep.
// Best-effort state only; losing it is never user-visible.
type replyCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]replyEntry
}

func newReplyCache(ttl time.Duration) *replyCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &replyCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]replyEntry),
	}
}

func (c *replyCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(entry.ts) > c.ttl {
		delete(c.entries, key)
		return "", false
	}
	return entry.value, true
}

func (c *replyCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = replyEntry{value: value, ts: c.now()}
}
