package profile

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BinhiHeritage_Go/internal/concurrency"
	"github.com/osse101/BinhiHeritage_Go/internal/content"
	"github.com/osse101/BinhiHeritage_Go/internal/database/memory"
	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/rewards"
)

func newTestService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	c, err := content.Load()
	require.NoError(t, err)
	store := memory.NewStore(c.Crops)
	return NewService(store, c, rewards.NewEngine(), concurrency.NewLockManager(), CacheConfig{}), store
}

func TestGetOrCreate_NewVisitor(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	p, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stats.Level)
	assert.Equal(t, 0, p.Stats.Experience)
	assert.Equal(t, 100, p.Stats.ExperienceToNext)
	assert.Empty(t, p.Stats.Badges)

	stored, err := store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.UserID)
}

func TestGetOrCreate_RequiresUserID(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetOrCreate(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSeedDemo(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedDemo(ctx))

	p, err := svc.GetOrCreate(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, "Heritage Explorer", p.DisplayName)
	assert.Equal(t, 2, p.Stats.NFTsOwned)
	assert.Equal(t, int64(25800), p.Stats.TotalDonated)
	assert.Equal(t, 3, p.Stats.Level)
	assert.Equal(t, 75, p.Stats.Experience)
	assert.Equal(t, map[string]int{"ifugao": 2, "batangas": 1, "bohol": 0}, p.QuestProgress)

	// Seeding twice keeps the existing profile
	_, err = svc.Update(ctx, "demo", func(p *domain.Profile) error {
		p.Stats.Tokens = 99
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, svc.SeedDemo(ctx))

	p, err = svc.GetOrCreate(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, 99, p.Stats.Tokens)
}

func TestUpdate_NormalizesLevel(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.Update(context.Background(), "u1", func(p *domain.Profile) error {
		p.Stats.TotalXP = 250
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stats.Level)
	assert.Equal(t, 50, p.Stats.Experience)
}

func TestUpdate_ErrorAbortsSave(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", func(p *domain.Profile) error {
		p.Stats.Tokens = 10
		return domain.ErrInvalidInput
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stats.Tokens)
}

func TestUpdate_SerializesPerUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Update(ctx, "u1", func(p *domain.Profile) error {
				p.Stats.Tokens++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 50, p.Stats.Tokens)
}

func TestReturnedProfilesAreCopies(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	p.Stats.Badges = append(p.Stats.Badges, "Fake")
	p.QuestProgress["ifugao"] = 3

	again, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, again.Stats.Badges)
	assert.Zero(t, again.QuestProgress["ifugao"])
}

func TestConnectWallet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.ConnectWallet(ctx, "u1", "metamask")
	require.NoError(t, err)
	assert.Equal(t, "metamask", p.WalletProvider)
	assert.Equal(t, "0x742F35Cc4C4f354F87c20A1c34a45B23E5CE5E4e", p.WalletAddress)

	_, err = svc.ConnectWallet(ctx, "u1", "ledger")
	assert.ErrorIs(t, err, domain.ErrUnknownWallet)

	assert.Len(t, svc.Wallets(), 3)
}

func TestRecordVisit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecordVisit(ctx, "u1", domain.SectionGaleri)
	require.NoError(t, err)
	p, err := svc.RecordVisit(ctx, "u1", domain.SectionGaleri)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.SectionGaleri}, p.VisitedSections)

	_, err = svc.RecordVisit(ctx, "u1", "gift-shop")
	assert.ErrorIs(t, err, domain.ErrUnknownSection)
}

func TestSummary_Demo(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.SeedDemo(ctx))

	sum, err := svc.Summary(ctx, "demo")
	require.NoError(t, err)

	assert.Equal(t, domain.LevelProgress{Level: 3, Percent: 75, Remaining: 25}, sum.LevelProgress)
	assert.Equal(t, 3, sum.Lifetime.QuestionsAnswered)
	assert.Equal(t, 0, sum.Lifetime.CompletedProvinces)
	assert.Equal(t, 3, sum.Lifetime.UniqueBadges)
	assert.Equal(t, []string{"First Supporter", "Rice Terraces Explorer", "Cultural Guardian"}, sum.BadgeNames)
	assert.Equal(t, "₱25,800", sum.Lifetime.TotalContributedText)
	assert.Equal(t, domain.TokenMilestone{TreesPlanted: 3, NextMilestone: 5, Remaining: 2}, sum.TokenMilestone)

	require.Len(t, sum.BadgeProgress, 2)
	assert.Equal(t, rewards.BadgeBinhiWarrior, sum.BadgeProgress[0].BadgeID)
	assert.InDelta(t, 40.0, sum.BadgeProgress[0].Percent, 0.001)
	assert.Equal(t, rewards.BadgePatubigPatron, sum.BadgeProgress[1].BadgeID)
	assert.InDelta(t, 100.0, sum.BadgeProgress[1].Percent, 0.001)
}

func TestBadges(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", func(p *domain.Profile) error {
		p.Stats.Badges = []string{rewards.BadgeBinhiWarrior}
		return nil
	})
	require.NoError(t, err)

	badges, err := svc.Badges(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, badges, len(rewards.Catalog()))
	for _, b := range badges {
		assert.Equal(t, b.Badge.ID == rewards.BadgeBinhiWarrior, b.Unlocked, b.Badge.ID)
	}
}
