// Package catalog serves the heirloom crop catalog.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/repository"
)

// FilterAll disables a filter field
const FilterAll = "all"

// Service defines the catalog operations
type Service interface {
	List(ctx context.Context, filter domain.CropFilter) ([]domain.Crop, error)
	Get(ctx context.Context, id int) (*domain.Crop, error)
	Types(ctx context.Context) ([]string, error)
}

type service struct {
	repo repository.Catalog
}

// NewService creates a catalog service
func NewService(repo repository.Catalog) Service {
	return &service{repo: repo}
}

// List returns crops matching every non-empty filter field, ordered by id.
// Adopted crops are included and flagged.
func (s *service) List(ctx context.Context, filter domain.CropFilter) ([]domain.Crop, error) {
	var rarity domain.Rarity
	if isActive(filter.Rarity) {
		r, ok := domain.ParseRarity(filter.Rarity)
		if !ok {
			return nil, fmt.Errorf("%w: unknown rarity %q", domain.ErrInvalidInput, filter.Rarity)
		}
		rarity = r
	}

	crops, err := s.repo.ListCrops(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]domain.Crop, 0, len(crops))
	for _, c := range crops {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Type), search) {
			continue
		}
		if isActive(filter.Type) && !strings.EqualFold(c.Type, filter.Type) {
			continue
		}
		if rarity != "" && c.Rarity != rarity {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int) (*domain.Crop, error) {
	return s.repo.GetCrop(ctx, id)
}

// Types lists the distinct crop types, sorted
func (s *service) Types(ctx context.Context) ([]string, error) {
	crops, err := s.repo.ListCrops(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var types []string
	for _, c := range crops {
		if !seen[c.Type] {
			seen[c.Type] = true
			types = append(types, c.Type)
		}
	}
	sort.Strings(types)
	return types, nil
}

func isActive(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, FilterAll)
}
