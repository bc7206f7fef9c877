package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BinhiHeritage_Go/internal/adoption"
	"github.com/osse101/BinhiHeritage_Go/internal/catalog"
	"github.com/osse101/BinhiHeritage_Go/internal/community"
	"github.com/osse101/BinhiHeritage_Go/internal/concurrency"
	"github.com/osse101/BinhiHeritage_Go/internal/content"
	"github.com/osse101/BinhiHeritage_Go/internal/database/memory"
	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/eventlog"
	"github.com/osse101/BinhiHeritage_Go/internal/guide"
	"github.com/osse101/BinhiHeritage_Go/internal/profile"
	"github.com/osse101/BinhiHeritage_Go/internal/quest"
	"github.com/osse101/BinhiHeritage_Go/internal/rewards"
	"github.com/osse101/BinhiHeritage_Go/internal/share"
	"github.com/osse101/BinhiHeritage_Go/internal/transparency"
)

// apiFixture wires the real services over the in-memory store
type apiFixture struct {
	router   chi.Router
	adoption adoption.Service
	profiles profile.Service
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	c, err := content.Load()
	require.NoError(t, err)

	store := memory.NewStore(c.Crops)
	bus := event.NewMemoryBus()
	engine := rewards.NewEngine()
	locks := concurrency.NewLockManager()
	defaultWallet := c.Wallets[0].Address

	profiles := profile.NewService(store, c, engine, locks, profile.CacheConfig{})
	tx := transparency.NewService(store, bus, defaultWallet)
	adopt := adoption.NewService(store, profiles, tx, engine, bus, locks)
	activity := eventlog.NewService(store, c.Activity)
	require.NoError(t, activity.Subscribe(bus))

	h := NewHandlers(Services{
		Catalog:      catalog.NewService(store),
		Adoption:     adopt,
		Profiles:     profiles,
		Quests:       quest.NewService(c.Provinces, profiles, engine, bus),
		Transparency: tx,
		Community:    community.NewService(c.Community, c.Leaderboard, store, bus),
		Activity:     activity,
		Share:        share.NewService(profiles, c.Provinces, defaultWallet),
		Guide:        guide.NewService(c.Guide, c.Highlights),
	})

	r := chi.NewRouter()
	h.Routes(r)
	return &apiFixture{router: r, adoption: adopt, profiles: profiles}
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out), w.Body.String())
	return out
}

var bg = context.Background()
