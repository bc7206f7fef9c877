package rewards

import "github.com/osse101/BinhiHeritage_Go/internal/domain"

type badgeRule struct {
	badge    domain.Badge
	unlocked func(domain.UserStats) bool
	// progress returns current/target for badges the dashboard tracks; nil otherwise
	progress func(domain.UserStats) (int64, int64)
}

var badgeRules = []badgeRule{
	{
		badge:    domain.Badge{ID: BadgeBinhiWarrior, Name: "Binhi Warrior", Description: "Own 5 heritage NFTs", Rarity: domain.BadgeRare},
		unlocked: func(s domain.UserStats) bool { return s.NFTsOwned >= 5 },
		progress: func(s domain.UserStats) (int64, int64) { return int64(s.NFTsOwned), 5 },
	},
	{
		badge:    domain.Badge{ID: BadgePatubigPatron, Name: "Patubig Patron", Description: "Donate ₱500 or more", Rarity: domain.BadgeRare},
		unlocked: func(s domain.UserStats) bool { return s.TotalDonated >= 500 },
		progress: func(s domain.UserStats) (int64, int64) { return s.TotalDonated, 500 },
	},
	{
		badge:    domain.Badge{ID: BadgeBantayBukid, Name: "Bantay Bukid", Description: "Make 3 consecutive donations", Rarity: domain.BadgeEpic},
		unlocked: func(s domain.UserStats) bool { return s.ConsecutiveDonations >= 3 },
		progress: func(s domain.UserStats) (int64, int64) { return int64(s.ConsecutiveDonations), 3 },
	},
	{
		badge:    domain.Badge{ID: BadgeTahananHero, Name: "Tahanan Hero", Description: "Own 10 heritage NFTs", Rarity: domain.BadgeLegendary},
		unlocked: func(s domain.UserStats) bool { return s.NFTsOwned >= 10 },
	},
	{
		badge:    domain.Badge{ID: BadgeTreePlanter, Name: "Tanim Kalinga", Description: "Plant 25 trees", Rarity: domain.BadgeEpic},
		unlocked: func(s domain.UserStats) bool { return s.TreesPlanted >= 25 },
	},
	{
		badge:    domain.Badge{ID: BadgeFirstSupporter, Name: "Unang Suporta", Description: "Make your first adoption or donation", Rarity: domain.BadgeCommon},
		unlocked: func(s domain.UserStats) bool { return s.NFTsOwned >= 1 || s.TotalDonated > 0 },
	},
}

// Catalog returns every badge definition in evaluation order
func Catalog() []domain.Badge {
	out := make([]domain.Badge, len(badgeRules))
	for i, r := range badgeRules {
		out[i] = r.badge
	}
	return out
}

// LookupBadge finds a badge definition by id
func LookupBadge(id string) (domain.Badge, bool) {
	for _, r := range badgeRules {
		if r.badge.ID == id {
			return r.badge, true
		}
	}
	return domain.Badge{}, false
}

// DisplayNames maps held badges to display names. Entries that are not catalog
// ids (province badges) are returned as they are.
func DisplayNames(held []string) []string {
	out := make([]string, len(held))
	for i, id := range held {
		if b, ok := LookupBadge(id); ok {
			out[i] = b.Name
			continue
		}
		out[i] = id
	}
	return out
}
