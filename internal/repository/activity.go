package repository

import (
	"context"
	"time"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// ActivityLog stores the public activity feed
type ActivityLog interface {
	// LogActivity stores an entry and assigns its ID
	LogActivity(ctx context.Context, activity *domain.Activity) error
	// ListActivity returns the newest entries first
	ListActivity(ctx context.Context, limit int) ([]domain.Activity, error)
	// CleanupActivity removes entries created before cutoff
	CleanupActivity(ctx context.Context, cutoff time.Time) (int64, error)
}
