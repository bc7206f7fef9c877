package domain

import (
	"slices"
	"time"
)

// UserStats holds every reward counter for a visitor. It is replaced wholesale on each update.
type UserStats struct {
	NFTsOwned            int      `json:"nfts_owned"`
	TotalDonated         int64    `json:"total_donated"`
	TreesPlanted         int      `json:"trees_planted"`
	Badges               []string `json:"badges"`
	Tokens               int      `json:"tokens"`
	ConsecutiveDonations int      `json:"consecutive_donations"`
	TotalXP              int64    `json:"total_xp"`
	Level                int      `json:"level"`
	Experience           int      `json:"experience"`
	ExperienceToNext     int      `json:"experience_to_next"`
}

// HasBadge reports whether the badge is already held. Catalog badges are
// stored by id, province badges by name.
func (s UserStats) HasBadge(name string) bool {
	return slices.Contains(s.Badges, name)
}

// Clone returns a deep copy
func (s UserStats) Clone() UserStats {
	s.Badges = slices.Clone(s.Badges)
	if s.Badges == nil {
		s.Badges = []string{}
	}
	return s
}

// Museum sections a visitor can stamp in their passbook
const (
	SectionTahanan   = "tahanan"
	SectionGaleri    = "galeri"
	SectionQuest     = "quest"
	SectionDashboard = "dashboard"
)

// Sections lists passbook sections in display order
var Sections = []string{SectionTahanan, SectionGaleri, SectionQuest, SectionDashboard}

// Profile is a museum visitor
type Profile struct {
	UserID          string         `json:"user_id"`
	DisplayName     string         `json:"display_name"`
	WalletProvider  string         `json:"wallet_provider,omitempty"`
	WalletAddress   string         `json:"wallet_address,omitempty"`
	Stats           UserStats      `json:"stats"`
	QuestProgress   map[string]int `json:"quest_progress"`
	VisitedSections []string       `json:"visited_sections"`
	LastAdoptedCrop string         `json:"last_adopted_crop,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Clone returns a deep copy so callers can mutate freely
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Stats = p.Stats.Clone()
	c.QuestProgress = make(map[string]int, len(p.QuestProgress))
	for k, v := range p.QuestProgress {
		c.QuestProgress[k] = v
	}
	c.VisitedSections = slices.Clone(p.VisitedSections)
	if c.VisitedSections == nil {
		c.VisitedSections = []string{}
	}
	return &c
}

// HasVisited reports whether the section was stamped
func (p *Profile) HasVisited(section string) bool {
	return slices.Contains(p.VisitedSections, section)
}

// QuestionsAnswered is the sum of correct answers across all provinces
func (p *Profile) QuestionsAnswered() int {
	total := 0
	for _, v := range p.QuestProgress {
		total += v
	}
	return total
}

// LevelProgress is the visitor's standing within the current level
type LevelProgress struct {
	Level     int     `json:"level"`
	Percent   float64 `json:"percent"`
	Remaining int     `json:"remaining"`
}

// BadgeProgress tracks a locked badge's requirement
type BadgeProgress struct {
	BadgeID string  `json:"badge_id"`
	Name    string  `json:"name"`
	Current int64   `json:"current"`
	Target  int64   `json:"target"`
	Percent float64 `json:"percent"`
}

// TokenMilestone is the next tree-planting milestone
type TokenMilestone struct {
	TreesPlanted  int `json:"trees_planted"`
	NextMilestone int `json:"next_milestone"`
	Remaining     int `json:"remaining"`
}

// LifetimeStats summarizes everything a visitor has done
type LifetimeStats struct {
	NFTsAdopted          int    `json:"nfts_adopted"`
	TotalContributed     int64  `json:"total_contributed"`
	TotalContributedText string `json:"total_contributed_text"`
	TreesPlanted         int    `json:"trees_planted"`
	QuestionsAnswered    int    `json:"questions_answered"`
	ConsecutiveDonations int    `json:"consecutive_donations"`
	UniqueBadges         int    `json:"unique_badges"`
	CompletedProvinces   int    `json:"completed_provinces"`
}

// ProfileSummary is the dashboard view of a profile
type ProfileSummary struct {
	Profile        *Profile        `json:"profile"`
	LevelProgress  LevelProgress   `json:"level_progress"`
	Lifetime       LifetimeStats   `json:"lifetime"`
	BadgeProgress  []BadgeProgress `json:"badge_progress"`
	TokenMilestone TokenMilestone  `json:"token_milestone"`
	BadgeNames     []string        `json:"badge_names"`
}

// WalletProvider is a selectable sample wallet
type WalletProvider struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
}
