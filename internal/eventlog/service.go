// Package eventlog turns domain events into the public activity feed.
package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
	"github.com/osse101/BinhiHeritage_Go/internal/repository"
)

// Service handles the activity feed
type Service interface {
	// Subscribe registers the logger for every feed-worthy event
	Subscribe(bus event.Bus) error
	// Feed returns logged activity newest first, followed by the seeded entries
	Feed(ctx context.Context, limit int) ([]domain.Activity, error)
	// Prune drops logged activity older than keep. Seeded entries stay.
	Prune(ctx context.Context, keep time.Duration) (int64, error)
}

type service struct {
	repo   repository.ActivityLog
	seeded []domain.Activity
	now    func() time.Time
}

// NewService creates the activity feed. seed messages are shown after real
// activity, in the given order.
func NewService(repo repository.ActivityLog, seed []string) Service {
	start := time.Now()
	seeded := make([]domain.Activity, len(seed))
	for i, msg := range seed {
		seeded[i] = domain.Activity{
			Type:      ActivitySeed,
			Message:   msg,
			CreatedAt: start.Add(-time.Duration(i+1) * time.Hour),
		}
	}
	return &service{repo: repo, seeded: seeded, now: time.Now}
}

func (s *service) Subscribe(bus event.Bus) error {
	for _, t := range []event.Type{event.AdoptionCompleted, event.QuestCompleted, event.BadgeUnlocked, event.LevelUp} {
		bus.Subscribe(t, s.handleEvent)
	}
	return nil
}

// describe renders an event as a feed entry. ok is false for events the feed ignores.
func describe(evt event.Event) (activity domain.Activity, ok bool, err error) {
	switch evt.Type {
	case event.AdoptionCompleted:
		p, err := event.DecodePayload[event.AdoptionCompletedPayloadV1](evt.Payload)
		if err != nil {
			return activity, false, err
		}
		msg := fmt.Sprintf("%s adopted %s (%s)", p.UserID, p.CropName, domain.FormatPeso(p.Amount))
		if p.Province != "" {
			msg = fmt.Sprintf("%s adopted %s in %s (%s)", p.UserID, p.CropName, p.Province, domain.FormatPeso(p.Amount))
		}
		return domain.Activity{Type: ActivityAdoption, UserID: p.UserID, Message: msg}, true, nil
	case event.QuestCompleted:
		p, err := event.DecodePayload[event.QuestCompletedPayloadV1](evt.Payload)
		if err != nil {
			return activity, false, err
		}
		return domain.Activity{Type: ActivityQuest, UserID: p.UserID, Message: "Quest completed: " + p.ProvinceName}, true, nil
	case event.BadgeUnlocked:
		p, err := event.DecodePayload[event.BadgeUnlockedPayloadV1](evt.Payload)
		if err != nil {
			return activity, false, err
		}
		return domain.Activity{Type: ActivityBadge, UserID: p.UserID, Message: fmt.Sprintf("%s earned the %s badge", p.UserID, p.BadgeName)}, true, nil
	case event.LevelUp:
		p, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
		if err != nil {
			return activity, false, err
		}
		return domain.Activity{Type: ActivityLevel, UserID: p.UserID, Message: fmt.Sprintf("%s reached level %d", p.UserID, p.NewLevel)}, true, nil
	}
	return activity, false, nil
}

func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	activity, ok, err := describe(evt)
	if err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", evt.Type, err)
	}
	if !ok {
		return nil
	}
	activity.CreatedAt = s.now()

	if err := s.repo.LogActivity(ctx, &activity); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldUserID, activity.UserID)
	return nil
}

func (s *service) Feed(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	logged, err := s.repo.ListActivity(ctx, limit)
	if err != nil {
		return nil, err
	}
	for _, seed := range s.seeded {
		if len(logged) >= limit {
			break
		}
		logged = append(logged, seed)
	}
	return logged, nil
}

func (s *service) Prune(ctx context.Context, keep time.Duration) (int64, error) {
	cutoff := s.now().Add(-keep)
	removed, err := s.repo.CleanupActivity(ctx, cutoff)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgPruneFailed, LogFieldError, err, LogFieldCutoff, cutoff)
		return 0, err
	}
	if removed > 0 {
		logger.FromContext(ctx).Info(LogMsgPruned, LogFieldRemoved, removed, LogFieldCutoff, cutoff)
	}
	return removed, nil
}
