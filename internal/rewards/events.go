package rewards

import (
	"context"

	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
)

// Event sources
const (
	SourceAdoption = "adoption"
	SourceQuest    = "quest"
)

// PublishOutcome announces the badges and level-up contained in an outcome
func PublishOutcome(ctx context.Context, pub event.Publisher, userID, source string, o Outcome) {
	log := logger.FromContext(ctx)

	if o.ProvinceBadge != "" {
		if err := pub.Publish(ctx, event.NewBadgeUnlockedEvent(userID, "", o.ProvinceBadge, "", source)); err != nil {
			log.Warn(LogMsgPublishFailed, "type", event.BadgeUnlocked, "error", err)
		}
	}
	for _, b := range o.Unlocked {
		if err := pub.Publish(ctx, event.NewBadgeUnlockedEvent(userID, b.ID, b.Name, string(b.Rarity), source)); err != nil {
			log.Warn(LogMsgPublishFailed, "type", event.BadgeUnlocked, "error", err)
		}
	}
	if o.LeveledUp() {
		if err := pub.Publish(ctx, event.NewLevelUpEvent(userID, o.PreviousLevel, o.Stats.Level, source)); err != nil {
			log.Warn(LogMsgPublishFailed, "type", event.LevelUp, "error", err)
		}
	}
}
