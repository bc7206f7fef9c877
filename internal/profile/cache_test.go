package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

func TestProfileCache(t *testing.T) {
	c := newProfileCache(2, time.Minute)
	c.Set(&domain.Profile{UserID: "a", DisplayName: "A"})

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "A", got.DisplayName)

	got.DisplayName = "mutated"
	again, _ := c.Get("a")
	assert.Equal(t, "A", again.DisplayName)

	c.Invalidate("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestProfileCache_Evicts(t *testing.T) {
	c := newProfileCache(2, time.Minute)
	c.Set(&domain.Profile{UserID: "a"})
	c.Set(&domain.Profile{UserID: "b"})
	c.Set(&domain.Profile{UserID: "c"})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestProfileCache_VersionMismatch(t *testing.T) {
	c := newProfileCache(2, time.Minute)
	c.lru.Add("old", &cachedProfile{Version: "0.9", Profile: &domain.Profile{UserID: "old"}})

	_, ok := c.Get("old")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
