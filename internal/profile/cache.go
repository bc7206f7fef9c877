package profile

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

type cachedProfile struct {
	Version  string
	Profile  *domain.Profile
	CachedAt time.Time
}

// profileCache is a read-through LRU in front of the profile repository.
// It stores and hands out clones, so cached entries are never shared.
type profileCache struct {
	lru *expirable.LRU[string, *cachedProfile]
}

func newProfileCache(size int, ttl time.Duration) *profileCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &profileCache{
		lru: expirable.NewLRU[string, *cachedProfile](size, nil, ttl),
	}
}

func (c *profileCache) Get(userID string) (*domain.Profile, bool) {
	entry, ok := c.lru.Get(userID)
	if !ok {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(userID)
		return nil, false
	}
	return entry.Profile.Clone(), true
}

func (c *profileCache) Set(p *domain.Profile) {
	c.lru.Add(p.UserID, &cachedProfile{
		Version:  CacheSchemaVersion,
		Profile:  p.Clone(),
		CachedAt: time.Now(),
	})
}

func (c *profileCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}

func (c *profileCache) Len() int {
	return c.lru.Len()
}
