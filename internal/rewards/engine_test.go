package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

func demoStats() domain.UserStats {
	return Normalize(domain.UserStats{
		NFTsOwned:            2,
		TotalDonated:         25800,
		TreesPlanted:         3,
		Badges:               []string{"First Supporter", "Rice Terraces Explorer", "Cultural Guardian"},
		Tokens:               5,
		ConsecutiveDonations: 2,
		TotalXP:              275,
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		xp        int64
		level     int
		exp       int
		remaining int
	}{
		{0, 1, 0, 100},
		{99, 1, 99, 1},
		{100, 2, 0, 100},
		{275, 3, 75, 25},
		{-10, 1, 0, 100},
	}
	for _, tt := range tests {
		s := Normalize(domain.UserStats{TotalXP: tt.xp})
		assert.Equal(t, tt.level, s.Level, "xp=%d", tt.xp)
		assert.Equal(t, tt.exp, s.Experience, "xp=%d", tt.xp)
		assert.Equal(t, 100, s.ExperienceToNext)
		assert.Equal(t, tt.remaining, NewEngine().LevelProgress(s).Remaining, "xp=%d", tt.xp)
	}
}

func TestApplyAdoption(t *testing.T) {
	engine := NewEngine()
	before := demoStats()

	out := engine.ApplyAdoption(before, 12500)

	assert.Equal(t, 3, out.Stats.NFTsOwned)
	assert.Equal(t, int64(38300), out.Stats.TotalDonated)
	assert.Equal(t, 6, out.Stats.Tokens)
	assert.Equal(t, 4, out.Stats.TreesPlanted)
	assert.Equal(t, 3, out.Stats.ConsecutiveDonations)
	assert.Equal(t, int64(375), out.Stats.TotalXP)
	assert.Equal(t, 4, out.Stats.Level)
	assert.True(t, out.LeveledUp())
	assert.Equal(t, 1, out.TokensEarned)
	assert.Equal(t, 100, out.XPEarned)

	var ids []string
	for _, b := range out.Unlocked {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{BadgePatubigPatron, BadgeBantayBukid, BadgeFirstSupporter}, ids)
	assert.Contains(t, out.Stats.Badges, BadgeBantayBukid)

	// Input is not mutated
	assert.Equal(t, 2, before.NFTsOwned)
	assert.Len(t, before.Badges, 3)
}

func TestApplyAdoption_StoresBadgeIDs(t *testing.T) {
	out := NewEngine().ApplyAdoption(domain.UserStats{}, 12500)

	assert.ElementsMatch(t, []string{BadgePatubigPatron, BadgeFirstSupporter}, out.Stats.Badges)
	assert.NotContains(t, out.Stats.Badges, "Unang Suporta")
	// display names are what the reward summary shows
	assert.ElementsMatch(t, []string{"Patubig Patron", "Unang Suporta"}, out.Summary().Badges)

	again := NewEngine().ApplyAdoption(out.Stats, 12500)
	assert.Empty(t, again.Unlocked)
	assert.Len(t, again.Stats.Badges, 2)
}

func TestApplyProvinceCompletion_KeepsProvinceBadgeName(t *testing.T) {
	out := NewEngine().ApplyProvinceCompletion(domain.UserStats{}, "Rice Terraces Guardian")

	assert.Equal(t, []string{"Rice Terraces Guardian"}, out.Stats.Badges)
	assert.Equal(t, "Rice Terraces Guardian", out.ProvinceBadge)
}

func TestDisplayNames(t *testing.T) {
	got := DisplayNames([]string{BadgeFirstSupporter, "Rice Terraces Guardian", BadgeTreePlanter})
	assert.Equal(t, []string{"Unang Suporta", "Rice Terraces Guardian", "Tanim Kalinga"}, got)
	assert.Empty(t, DisplayNames(nil))
}

func TestEvaluate_DedupByMembership(t *testing.T) {
	engine := NewEngine()
	s := domain.UserStats{NFTsOwned: 10, Badges: []string{BadgeBinhiWarrior, BadgeFirstSupporter}}

	unlocked := engine.Evaluate(s)

	require.Len(t, unlocked, 1)
	assert.Equal(t, BadgeTahananHero, unlocked[0].ID)

	s.Badges = append(s.Badges, BadgeTahananHero)
	assert.Empty(t, engine.Evaluate(s))
}

func TestEvaluate_Predicates(t *testing.T) {
	engine := NewEngine()
	tests := []struct {
		name  string
		stats domain.UserStats
		want  string
	}{
		{"first supporter by donation", domain.UserStats{TotalDonated: 1}, BadgeFirstSupporter},
		{"first supporter by nft", domain.UserStats{NFTsOwned: 1}, BadgeFirstSupporter},
		{"tree planter", domain.UserStats{TreesPlanted: 25, Badges: []string{BadgeFirstSupporter}}, BadgeTreePlanter},
		{"bantay bukid", domain.UserStats{ConsecutiveDonations: 3}, BadgeBantayBukid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, b := range engine.Evaluate(tt.stats) {
				ids = append(ids, b.ID)
			}
			assert.Contains(t, ids, tt.want)
		})
	}

	assert.Empty(t, engine.Evaluate(domain.UserStats{}))
}

func TestApplyCorrectAnswerAndCompletion(t *testing.T) {
	engine := NewEngine()
	s := Normalize(domain.UserStats{TotalXP: 60})

	answer := engine.ApplyCorrectAnswer(s)
	assert.Equal(t, 1, answer.Stats.Tokens)
	assert.Equal(t, int64(85), answer.Stats.TotalXP)
	assert.False(t, answer.LeveledUp())

	done := engine.ApplyProvinceCompletion(answer.Stats, "Rice Terraces Guardian")
	assert.Equal(t, 2, done.Stats.Tokens)
	assert.Equal(t, int64(135), done.Stats.TotalXP)
	assert.True(t, done.LeveledUp())
	assert.Equal(t, "Rice Terraces Guardian", done.ProvinceBadge)
	assert.Equal(t, []string{"Rice Terraces Guardian"}, done.Stats.Badges)

	again := engine.ApplyProvinceCompletion(done.Stats, "Rice Terraces Guardian")
	assert.Empty(t, again.ProvinceBadge)
	assert.Len(t, again.Stats.Badges, 1)

	merged := answer.Merge(done)
	summary := merged.Summary()
	assert.Equal(t, 2, summary.Tokens)
	assert.Equal(t, 75, summary.Experience)
	assert.True(t, summary.LeveledUp)
	assert.Equal(t, 2, summary.LevelReached)
	assert.Equal(t, []string{"Rice Terraces Guardian"}, summary.Badges)
}

func TestBadgeProgress(t *testing.T) {
	engine := NewEngine()

	progress := engine.BadgeProgress(domain.UserStats{NFTsOwned: 2, TotalDonated: 250})
	require.Len(t, progress, 2)
	assert.Equal(t, BadgeBinhiWarrior, progress[0].BadgeID)
	assert.InDelta(t, 40.0, progress[0].Percent, 0.001)
	assert.Equal(t, BadgePatubigPatron, progress[1].BadgeID)
	assert.InDelta(t, 50.0, progress[1].Percent, 0.001)

	progress = engine.BadgeProgress(domain.UserStats{TotalDonated: 25800, Badges: []string{BadgeBinhiWarrior}})
	require.Len(t, progress, 2)
	assert.Equal(t, BadgePatubigPatron, progress[0].BadgeID)
	assert.InDelta(t, 100.0, progress[0].Percent, 0.001)
	assert.Equal(t, BadgeBantayBukid, progress[1].BadgeID)
}

func TestTokenMilestone(t *testing.T) {
	engine := NewEngine()
	tests := []struct {
		trees, next, remaining int
	}{
		{0, 5, 5},
		{3, 5, 2},
		{5, 10, 5},
		{12, 15, 3},
	}
	for _, tt := range tests {
		m := engine.TokenMilestone(domain.UserStats{TreesPlanted: tt.trees})
		assert.Equal(t, tt.next, m.NextMilestone, "trees=%d", tt.trees)
		assert.Equal(t, tt.remaining, m.Remaining, "trees=%d", tt.trees)
	}
}

func TestBadgesCatalog(t *testing.T) {
	engine := NewEngine()
	statuses := engine.Badges(domain.UserStats{Badges: []string{BadgeTreePlanter}})
	require.Len(t, statuses, len(Catalog()))

	for _, st := range statuses {
		assert.Equal(t, st.ID == BadgeTreePlanter, st.Unlocked, st.ID)
	}

	b, ok := LookupBadge(BadgeTahananHero)
	require.True(t, ok)
	assert.Equal(t, domain.BadgeLegendary, b.Rarity)
	_, ok = LookupBadge("nope")
	assert.False(t, ok)
}
