package rewards

import "github.com/osse101/BinhiHeritage_Go/internal/domain"

// LevelForXP returns the level reached with totalXP
func LevelForXP(totalXP int64) int {
	if totalXP <= 0 {
		return StartLevel
	}
	return StartLevel + int(totalXP/XPPerLevel)
}

// XPForLevel returns the cumulative XP needed to reach level
func XPForLevel(level int) int64 {
	if level <= StartLevel {
		return 0
	}
	return int64(level-StartLevel) * XPPerLevel
}

// Normalize derives Level, Experience and ExperienceToNext from TotalXP
func Normalize(s domain.UserStats) domain.UserStats {
	if s.TotalXP < 0 {
		s.TotalXP = 0
	}
	s.Level = LevelForXP(s.TotalXP)
	s.Experience = int(s.TotalXP - XPForLevel(s.Level))
	s.ExperienceToNext = XPPerLevel
	if s.Badges == nil {
		s.Badges = []string{}
	}
	return s
}
