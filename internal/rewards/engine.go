package rewards

import (
	"math"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// Outcome is the result of applying one rewarded action
type Outcome struct {
	Stats         domain.UserStats
	TokensEarned  int
	XPEarned      int
	Unlocked      []domain.Badge
	ProvinceBadge string
	PreviousLevel int
}

// LeveledUp reports whether the action crossed a level boundary
func (o Outcome) LeveledUp() bool {
	return o.Stats.Level > o.PreviousLevel
}

// BadgeNames lists every badge name earned by the action
func (o Outcome) BadgeNames() []string {
	names := make([]string, 0, len(o.Unlocked)+1)
	if o.ProvinceBadge != "" {
		names = append(names, o.ProvinceBadge)
	}
	for _, b := range o.Unlocked {
		names = append(names, b.Name)
	}
	return names
}

// Summary converts the outcome for API responses
func (o Outcome) Summary() domain.RewardSummary {
	s := domain.RewardSummary{
		Tokens:     o.TokensEarned,
		Experience: o.XPEarned,
		Badges:     o.BadgeNames(),
		LeveledUp:  o.LeveledUp(),
	}
	if s.LeveledUp {
		s.LevelReached = o.Stats.Level
	}
	return s
}

// Merge folds a follow-up outcome into o, keeping o's starting level
func (o Outcome) Merge(next Outcome) Outcome {
	merged := Outcome{
		Stats:         next.Stats,
		TokensEarned:  o.TokensEarned + next.TokensEarned,
		XPEarned:      o.XPEarned + next.XPEarned,
		Unlocked:      append(append([]domain.Badge{}, o.Unlocked...), next.Unlocked...),
		ProvinceBadge: o.ProvinceBadge,
		PreviousLevel: o.PreviousLevel,
	}
	if next.ProvinceBadge != "" {
		merged.ProvinceBadge = next.ProvinceBadge
	}
	return merged
}

// Engine provides pure reward logic (no storage dependencies)
type Engine struct{}

// NewEngine creates a new reward engine
func NewEngine() *Engine {
	return &Engine{}
}

// ApplyAdoption credits an adoption worth amount pesos
func (e *Engine) ApplyAdoption(stats domain.UserStats, amount int64) Outcome {
	s := stats.Clone()
	prev := Normalize(s).Level

	s.NFTsOwned++
	s.TotalDonated += amount
	s.Tokens += AdoptionTokens
	s.TreesPlanted += AdoptionTrees
	s.ConsecutiveDonations++
	s.TotalXP += AdoptionXP

	return e.finish(s, prev, AdoptionTokens, AdoptionXP, "")
}

// ApplyCorrectAnswer credits one correct quest answer
func (e *Engine) ApplyCorrectAnswer(stats domain.UserStats) Outcome {
	s := stats.Clone()
	prev := Normalize(s).Level

	s.Tokens += CorrectAnswerTokens
	s.TotalXP += CorrectAnswerXP

	return e.finish(s, prev, CorrectAnswerTokens, CorrectAnswerXP, "")
}

// ApplyProvinceCompletion credits finishing a province and awards its badge once
func (e *Engine) ApplyProvinceCompletion(stats domain.UserStats, badge string) Outcome {
	s := stats.Clone()
	prev := Normalize(s).Level

	awarded := ""
	if badge != "" && !s.HasBadge(badge) {
		s.Badges = append(s.Badges, badge)
		awarded = badge
	}
	s.Tokens += ProvinceCompletionTokens
	s.TotalXP += ProvinceCompletionXP

	return e.finish(s, prev, ProvinceCompletionTokens, ProvinceCompletionXP, awarded)
}

func (e *Engine) finish(s domain.UserStats, prevLevel, tokens, xp int, provinceBadge string) Outcome {
	unlocked := e.Evaluate(s)
	for _, b := range unlocked {
		s.Badges = append(s.Badges, b.ID)
	}
	return Outcome{
		Stats:         Normalize(s),
		TokensEarned:  tokens,
		XPEarned:      xp,
		Unlocked:      unlocked,
		ProvinceBadge: provinceBadge,
		PreviousLevel: prevLevel,
	}
}

// Evaluate returns badges whose requirement holds and which are not yet held
func (e *Engine) Evaluate(stats domain.UserStats) []domain.Badge {
	var out []domain.Badge
	for _, r := range badgeRules {
		if r.unlocked(stats) && !stats.HasBadge(r.badge.ID) {
			out = append(out, r.badge)
		}
	}
	return out
}

// Badges lists every badge with its unlocked state
func (e *Engine) Badges(stats domain.UserStats) []domain.BadgeStatus {
	out := make([]domain.BadgeStatus, 0, len(badgeRules))
	for _, r := range badgeRules {
		out = append(out, domain.BadgeStatus{Badge: r.badge, Unlocked: stats.HasBadge(r.badge.ID)})
	}
	return out
}

// BadgeProgress reports progress toward the first tracked badges not yet held
func (e *Engine) BadgeProgress(stats domain.UserStats) []domain.BadgeProgress {
	out := make([]domain.BadgeProgress, 0, TrackedBadgeLimit)
	for _, r := range badgeRules {
		if r.progress == nil || stats.HasBadge(r.badge.ID) {
			continue
		}
		current, target := r.progress(stats)
		pct := math.Min(float64(current)/float64(target)*100, 100)
		out = append(out, domain.BadgeProgress{
			BadgeID: r.badge.ID,
			Name:    r.badge.Name,
			Current: current,
			Target:  target,
			Percent: pct,
		})
		if len(out) == TrackedBadgeLimit {
			break
		}
	}
	return out
}

// TokenMilestone returns the next tree-planting milestone strictly above the current count
func (e *Engine) TokenMilestone(stats domain.UserStats) domain.TokenMilestone {
	next := (stats.TreesPlanted/TreeMilestoneStep + 1) * TreeMilestoneStep
	return domain.TokenMilestone{
		TreesPlanted:  stats.TreesPlanted,
		NextMilestone: next,
		Remaining:     next - stats.TreesPlanted,
	}
}

// LevelProgress reports the percentage through the current level
func (e *Engine) LevelProgress(stats domain.UserStats) domain.LevelProgress {
	s := Normalize(stats)
	return domain.LevelProgress{
		Level:     s.Level,
		Percent:   float64(s.Experience) / float64(s.ExperienceToNext) * 100,
		Remaining: s.ExperienceToNext - s.Experience,
	}
}
