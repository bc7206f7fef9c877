package eventlog

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// MockRepository is a mock implementation of repository.ActivityLog
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LogActivity(ctx context.Context, activity *domain.Activity) error {
	return m.Called(ctx, activity).Error(0)
}

func (m *MockRepository) ListActivity(ctx context.Context, limit int) ([]domain.Activity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *MockRepository) CleanupActivity(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
