// Package profile manages museum visitors: their reward stats, wallet, quest
// progress and passbook stamps.
package profile

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/osse101/BinhiHeritage_Go/internal/concurrency"
	"github.com/osse101/BinhiHeritage_Go/internal/content"
	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
	"github.com/osse101/BinhiHeritage_Go/internal/repository"
	"github.com/osse101/BinhiHeritage_Go/internal/rewards"
)

// UpdateFunc mutates a profile in place. Returning an error aborts the save.
type UpdateFunc func(p *domain.Profile) error

// Service defines the interface for profile operations
type Service interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Profile, error)
	// Update runs fn on a fresh copy of the profile while holding the user's
	// lock and saves the result wholesale.
	Update(ctx context.Context, userID string, fn UpdateFunc) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	SeedDemo(ctx context.Context) error

	ConnectWallet(ctx context.Context, userID, providerID string) (*domain.Profile, error)
	Wallets() []domain.WalletProvider
	RecordVisit(ctx context.Context, userID, section string) (*domain.Profile, error)

	Summary(ctx context.Context, userID string) (*domain.ProfileSummary, error)
	Badges(ctx context.Context, userID string) ([]domain.BadgeStatus, error)
}

// CacheConfig sizes the profile cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

type service struct {
	repo    repository.Profiles
	content *content.Content
	engine  *rewards.Engine
	locks   *concurrency.LockManager
	cache   *profileCache
	now     func() time.Time
}

// NewService creates a profile service
func NewService(repo repository.Profiles, c *content.Content, engine *rewards.Engine, locks *concurrency.LockManager, cacheCfg CacheConfig) Service {
	return &service{
		repo:    repo,
		content: c,
		engine:  engine,
		locks:   locks,
		cache:   newProfileCache(cacheCfg.Size, cacheCfg.TTL),
		now:     time.Now,
	}
}

func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	return nil
}

func (s *service) newProfile(userID string) *domain.Profile {
	now := s.now()
	return &domain.Profile{
		UserID:          userID,
		DisplayName:     userID,
		Stats:           rewards.Normalize(domain.UserStats{}),
		QuestProgress:   map[string]int{},
		VisitedSections: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// load returns the stored profile or a new unsaved one
func (s *service) load(ctx context.Context, userID string) (*domain.Profile, bool, error) {
	if p, ok := s.cache.Get(userID); ok {
		return p, true, nil
	}
	p, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return s.newProfile(userID), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	s.cache.Set(p)
	return p, true, nil
}

func (s *service) save(ctx context.Context, p *domain.Profile) error {
	p.UpdatedAt = s.now()
	s.cache.Invalidate(p.UserID)
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return err
	}
	s.cache.Set(p)
	return nil
}

func (s *service) GetOrCreate(ctx context.Context, userID string) (*domain.Profile, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if p, ok := s.cache.Get(userID); ok {
		return p, nil
	}

	var out *domain.Profile
	err := s.locks.WithLock(userID, func() error {
		p, exists, err := s.load(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			if err := s.save(ctx, p); err != nil {
				return err
			}
			logger.FromContext(ctx).Info(LogMsgProfileCreated, "user_id", userID)
		}
		out = p
		return nil
	})
	return out, err
}

func (s *service) Update(ctx context.Context, userID string, fn UpdateFunc) (*domain.Profile, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	var out *domain.Profile
	err := s.locks.WithLock(userID, func() error {
		p, _, err := s.load(ctx, userID)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		p.Stats = rewards.Normalize(p.Stats)
		if err := s.save(ctx, p); err != nil {
			return err
		}
		out = p.Clone()
		return nil
	})
	return out, err
}

func (s *service) List(ctx context.Context) ([]*domain.Profile, error) {
	return s.repo.ListProfiles(ctx)
}

// SeedDemo stores the walkthrough profile unless it already exists
func (s *service) SeedDemo(ctx context.Context) error {
	demo := s.content.DemoProfile
	log := logger.FromContext(ctx)

	return s.locks.WithLock(demo.UserID, func() error {
		_, err := s.repo.GetProfile(ctx, demo.UserID)
		if err == nil {
			log.Info(LogMsgDemoExists, "user_id", demo.UserID)
			return nil
		}
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return err
		}

		p := s.newProfile(demo.UserID)
		p.DisplayName = demo.DisplayName
		p.Stats = rewards.Normalize(domain.UserStats{
			NFTsOwned:            demo.NFTsOwned,
			TotalDonated:         demo.TotalDonated,
			TreesPlanted:         demo.TreesPlanted,
			Badges:               slices.Clone(demo.Badges),
			Tokens:               demo.Tokens,
			ConsecutiveDonations: demo.ConsecutiveDonations,
			TotalXP:              demo.TotalXP,
		})
		for province, progress := range demo.QuestProgress {
			p.QuestProgress[province] = progress
		}
		if err := s.save(ctx, p); err != nil {
			return err
		}
		log.Info(LogMsgDemoSeeded, "user_id", demo.UserID, "level", p.Stats.Level)
		return nil
	})
}

// ConnectWallet attaches one of the sample wallet providers to the profile
func (s *service) ConnectWallet(ctx context.Context, userID, providerID string) (*domain.Profile, error) {
	wallet, ok := s.content.Wallet(providerID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownWallet, providerID)
	}
	p, err := s.Update(ctx, userID, func(p *domain.Profile) error {
		p.WalletProvider = wallet.ID
		p.WalletAddress = wallet.Address
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgWalletConnected, "user_id", userID, "wallet", wallet.ID)
	return p, nil
}

func (s *service) Wallets() []domain.WalletProvider {
	return slices.Clone(s.content.Wallets)
}

// RecordVisit stamps a museum section in the passbook. Repeat visits are no-ops.
func (s *service) RecordVisit(ctx context.Context, userID, section string) (*domain.Profile, error) {
	if !slices.Contains(domain.Sections, section) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSection, section)
	}
	return s.Update(ctx, userID, func(p *domain.Profile) error {
		if !p.HasVisited(section) {
			p.VisitedSections = append(p.VisitedSections, section)
		}
		return nil
	})
}

func (s *service) Summary(ctx context.Context, userID string) (*domain.ProfileSummary, error) {
	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, province := range s.content.Provinces {
		if province.IsComplete(p.QuestProgress[province.ID]) {
			completed++
		}
	}

	return &domain.ProfileSummary{
		Profile:       p,
		LevelProgress: s.engine.LevelProgress(p.Stats),
		Lifetime: domain.LifetimeStats{
			NFTsAdopted:          p.Stats.NFTsOwned,
			TotalContributed:     p.Stats.TotalDonated,
			TotalContributedText: domain.FormatPeso(p.Stats.TotalDonated),
			TreesPlanted:         p.Stats.TreesPlanted,
			QuestionsAnswered:    p.QuestionsAnswered(),
			ConsecutiveDonations: p.Stats.ConsecutiveDonations,
			UniqueBadges:         len(p.Stats.Badges),
			CompletedProvinces:   completed,
		},
		BadgeProgress:  s.engine.BadgeProgress(p.Stats),
		TokenMilestone: s.engine.TokenMilestone(p.Stats),
		BadgeNames:     rewards.DisplayNames(p.Stats.Badges),
	}, nil
}

func (s *service) Badges(ctx context.Context, userID string) ([]domain.BadgeStatus, error) {
	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.engine.Badges(p.Stats), nil
}
