package repository

import (
	"context"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// Profiles stores visitor profiles. Profiles are written wholesale.
type Profiles interface {
	// GetProfile returns domain.ErrProfileNotFound for unknown users
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	SaveProfile(ctx context.Context, profile *domain.Profile) error
	ListProfiles(ctx context.Context) ([]*domain.Profile, error)
}
