// Package community keeps the real-world-asset dashboard and the leaderboard.
package community

import (
	"context"
	"math/rand/v2"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
	"github.com/osse101/BinhiHeritage_Go/internal/repository"
)

// Service defines the dashboard operations
type Service interface {
	Stats(ctx context.Context) domain.CommunityStats
	// Tick applies one round of simulated community growth
	Tick(ctx context.Context) error
	RecordAdoption(ctx context.Context, province string, amount int64)
	Subscribe(bus event.Bus)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type service struct {
	profiles  repository.Profiles
	publisher event.Publisher
	seeded    []domain.LeaderboardEntry
	intn      func(n int) int
	now       func() time.Time

	mu    sync.RWMutex
	stats domain.CommunityStats
}

// NewService creates the dashboard seeded with initial stats and leaderboard entries
func NewService(initial domain.CommunityStats, seeded []domain.LeaderboardEntry, profiles repository.Profiles, publisher event.Publisher) Service {
	initial.ProvinceAdoptions = slices.Clone(initial.ProvinceAdoptions)
	initial.UpdatedAt = time.Now()
	return &service{
		profiles:  profiles,
		publisher: publisher,
		seeded:    slices.Clone(seeded),
		intn:      rand.IntN,
		now:       time.Now,
		stats:     initial,
	}
}

func (s *service) Stats(_ context.Context) domain.CommunityStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.stats
	out.ProvinceAdoptions = slices.Clone(s.stats.ProvinceAdoptions)
	out.GoalProgress = out.GoalPercent()
	return out
}

func (s *service) Tick(ctx context.Context) error {
	s.mu.Lock()
	s.stats.TotalAdoptions += s.intn(TickMaxAdoptions)
	s.stats.TreesPlanted += s.intn(TickMaxTrees)
	s.stats.FundsRaised += int64(s.intn(TickMaxFunds))
	s.stats.UpdatedAt = s.now()
	payload := s.payloadLocked()
	s.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgCommunityTick, "total_adoptions", payload.TotalAdoptions, "funds_raised", payload.FundsRaised)
	return s.publisher.Publish(ctx, event.NewCommunityUpdatedEvent(payload))
}

// RecordAdoption counts a real adoption toward the totals and its province
func (s *service) RecordAdoption(ctx context.Context, province string, amount int64) {
	s.mu.Lock()
	s.stats.TotalAdoptions++
	s.stats.TreesPlanted++
	s.stats.FundsRaised += amount
	if province != "" {
		found := false
		for i := range s.stats.ProvinceAdoptions {
			if s.stats.ProvinceAdoptions[i].Province == province {
				s.stats.ProvinceAdoptions[i].Adoptions++
				found = true
				break
			}
		}
		if !found {
			s.stats.ProvinceAdoptions = append(s.stats.ProvinceAdoptions, domain.ProvinceCount{Province: province, Adoptions: 1})
		}
		sort.SliceStable(s.stats.ProvinceAdoptions, func(i, j int) bool {
			return s.stats.ProvinceAdoptions[i].Adoptions > s.stats.ProvinceAdoptions[j].Adoptions
		})
	}
	s.stats.UpdatedAt = s.now()
	payload := s.payloadLocked()
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgAdoptionCounted, "province", province, "amount", amount)
	if err := s.publisher.Publish(ctx, event.NewCommunityUpdatedEvent(payload)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "error", err)
	}
}

func (s *service) payloadLocked() event.CommunityUpdatedPayloadV1 {
	return event.CommunityUpdatedPayloadV1{
		TotalAdoptions: s.stats.TotalAdoptions,
		TreesPlanted:   s.stats.TreesPlanted,
		FundsRaised:    s.stats.FundsRaised,
	}
}

// Subscribe counts every completed adoption
func (s *service) Subscribe(bus event.Bus) {
	bus.Subscribe(event.AdoptionCompleted, func(ctx context.Context, e event.Event) error {
		p, err := event.DecodePayload[event.AdoptionCompletedPayloadV1](e.Payload)
		if err != nil {
			return err
		}
		s.RecordAdoption(ctx, p.Province, p.Amount)
		return nil
	})
}

// Leaderboard ranks visitors and the seeded community members by tokens
func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	entries := slices.Clone(s.seeded)
	for _, p := range profiles {
		entries = append(entries, domain.LeaderboardEntry{
			UserID: p.UserID,
			Name:   p.DisplayName,
			Title:  VisitorTitle,
			Tokens: p.Stats.Tokens,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Tokens > entries[j].Tokens })

	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
