package quest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BinhiHeritage_Go/internal/concurrency"
	"github.com/osse101/BinhiHeritage_Go/internal/content"
	"github.com/osse101/BinhiHeritage_Go/internal/database/memory"
	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/profile"
	"github.com/osse101/BinhiHeritage_Go/internal/rewards"
)

type fixture struct {
	svc      Service
	profiles profile.Service
	events   map[event.Type]int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c, err := content.Load()
	require.NoError(t, err)

	engine := rewards.NewEngine()
	profiles := profile.NewService(memory.NewStore(c.Crops), c, engine, concurrency.NewLockManager(), profile.CacheConfig{})
	bus := event.NewMemoryBus()

	f := &fixture{
		svc:      NewService(c.Provinces, profiles, engine, bus),
		profiles: profiles,
		events:   make(map[event.Type]int),
	}
	for _, typ := range event.AllTypes {
		bus.Subscribe(typ, func(_ context.Context, e event.Event) error {
			f.events[e.Type]++
			return nil
		})
	}
	return f
}

func TestList(t *testing.T) {
	f := newFixture(t)
	views, err := f.svc.List(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, views, 3)
	assert.Equal(t, "ifugao", views[0].ID)
	assert.Equal(t, 3, views[0].QuestionCount)
	assert.Zero(t, views[0].Progress)
	assert.False(t, views[0].Completed)
}

func TestCurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q, err := f.svc.Current(ctx, "u1", "batangas")
	require.NoError(t, err)
	assert.Equal(t, 0, q.Index)
	assert.Equal(t, "batangas-1", q.Question.ID)

	_, err = f.svc.Current(ctx, "u1", "cebu")
	assert.ErrorIs(t, err, domain.ErrProvinceNotFound)
}

func TestAnswer_Correct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Answer(ctx, "u1", "ifugao", 1)
	require.NoError(t, err)

	assert.True(t, res.Correct)
	assert.Equal(t, 1, res.Progress)
	assert.False(t, res.Completed)
	assert.Equal(t, 1, res.Rewards.Tokens)
	assert.Equal(t, 25, res.Rewards.Experience)

	p, err := f.profiles.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.QuestProgress["ifugao"])
	assert.Equal(t, 1, p.Stats.Tokens)
	assert.Equal(t, int64(25), p.Stats.TotalXP)

	assert.Equal(t, 1, f.events[event.QuestAnswered])
	assert.Zero(t, f.events[event.QuestCompleted])

	next, err := f.svc.Current(ctx, "u1", "ifugao")
	require.NoError(t, err)
	assert.Equal(t, "ifugao-2", next.Question.ID)
}

func TestAnswer_WrongLeavesProfileUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Answer(ctx, "u1", "ifugao", 3)
	require.NoError(t, err)

	assert.False(t, res.Correct)
	assert.Equal(t, 1, res.CorrectOption)
	assert.NotEmpty(t, res.Explanation)
	assert.Zero(t, res.Progress)
	assert.Zero(t, res.Rewards.Tokens)

	p, err := f.profiles.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, p.QuestProgress["ifugao"])
	assert.Zero(t, p.Stats.TotalXP)
	assert.Equal(t, 1, f.events[event.QuestAnswered])
}

func TestAnswer_OptionOutOfRange(t *testing.T) {
	f := newFixture(t)
	for _, option := range []int{-1, 4} {
		_, err := f.svc.Answer(context.Background(), "u1", "ifugao", option)
		assert.ErrorIs(t, err, domain.ErrInvalidAnswer)
	}
	assert.Zero(t, f.events[event.QuestAnswered])
}

func TestAnswer_CompletesProvince(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, option := range []int{2, 2} {
		res, err := f.svc.Answer(ctx, "u1", "batangas", option)
		require.NoError(t, err)
		require.True(t, res.Correct)
	}
	res, err := f.svc.Answer(ctx, "u1", "batangas", 2)
	require.NoError(t, err)

	assert.True(t, res.Completed)
	assert.Equal(t, 3, res.Progress)
	assert.Equal(t, 2, res.Rewards.Tokens)
	assert.Equal(t, 75, res.Rewards.Experience)
	assert.Contains(t, res.Rewards.Badges, "Barako Coffee Master")
	assert.True(t, res.Rewards.LeveledUp)
	assert.Equal(t, 2, res.Rewards.LevelReached)

	p, err := f.profiles.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, p.Stats.HasBadge("Barako Coffee Master"))
	assert.Equal(t, 4, p.Stats.Tokens)
	assert.Equal(t, int64(125), p.Stats.TotalXP)

	assert.Equal(t, 1, f.events[event.QuestCompleted])
	assert.Equal(t, 1, f.events[event.BadgeUnlocked])
	assert.Equal(t, 1, f.events[event.LevelUp])

	_, err = f.svc.Answer(ctx, "u1", "batangas", 2)
	assert.ErrorIs(t, err, domain.ErrQuestCompleted)
	_, err = f.svc.Current(ctx, "u1", "batangas")
	assert.ErrorIs(t, err, domain.ErrQuestCompleted)
}

func TestAnswer_DemoFinishesIfugao(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.profiles.SeedDemo(ctx))

	res, err := f.svc.Answer(ctx, "demo", "ifugao", 1)
	require.NoError(t, err)

	assert.True(t, res.Completed)
	assert.Equal(t, []string{"Rice Terraces Guardian", "Patubig Patron", "Unang Suporta"}, res.Rewards.Badges)
	assert.Equal(t, 4, res.Rewards.LevelReached)
}
