package repository

import (
	"context"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// Catalog stores the crop catalog and its adoption flags
type Catalog interface {
	// ListCrops returns every crop ordered by id
	ListCrops(ctx context.Context) ([]domain.Crop, error)
	GetCrop(ctx context.Context, id int) (*domain.Crop, error)
	// MarkAdopted atomically flags a crop as adopted by userID.
	// Returns domain.ErrCropAlreadyAdopted if it was already adopted.
	MarkAdopted(ctx context.Context, id int, userID string) error
	// ReleaseAdoption clears the flag set by MarkAdopted if userID still holds it
	ReleaseAdoption(ctx context.Context, id int, userID string) error
}
