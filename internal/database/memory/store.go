// Package memory is the default storage backend: process-local maps guarded by a
// single RWMutex. Everything returned is a copy.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store implements repository.Store in memory
type Store struct {
	mu           sync.RWMutex
	crops        map[int]domain.Crop
	profiles     map[string]*domain.Profile
	transactions map[string]domain.Transaction
	activity     []domain.Activity
	nextActivity int64
}

// NewStore creates a store seeded with the given catalog
func NewStore(crops []domain.Crop) *Store {
	s := &Store{
		crops:        make(map[int]domain.Crop, len(crops)),
		profiles:     make(map[string]*domain.Profile),
		transactions: make(map[string]domain.Transaction),
	}
	for _, c := range crops {
		s.crops[c.ID] = c
	}
	return s
}

// ListCrops returns every crop ordered by id
func (s *Store) ListCrops(_ context.Context) ([]domain.Crop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Crop, 0, len(s.crops))
	for _, c := range s.crops {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetCrop returns a crop by id
func (s *Store) GetCrop(_ context.Context, id int) (*domain.Crop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.crops[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrCropNotFound, id)
	}
	return &c, nil
}

// MarkAdopted flags a crop as adopted
func (s *Store) MarkAdopted(_ context.Context, id int, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.crops[id]
	if !ok {
		return fmt.Errorf("%w: id %d", domain.ErrCropNotFound, id)
	}
	if c.Adopted {
		return fmt.Errorf("%w: %s", domain.ErrCropAlreadyAdopted, c.Name)
	}
	c.Adopted = true
	c.AdoptedBy = userID
	s.crops[id] = c
	return nil
}

// ReleaseAdoption undoes MarkAdopted for userID
func (s *Store) ReleaseAdoption(_ context.Context, id int, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.crops[id]
	if !ok {
		return fmt.Errorf("%w: id %d", domain.ErrCropNotFound, id)
	}
	if c.Adopted && c.AdoptedBy == userID {
		c.Adopted = false
		c.AdoptedBy = ""
		s.crops[id] = c
	}
	return nil
}

// GetProfile returns a copy of the stored profile
func (s *Store) GetProfile(_ context.Context, userID string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, userID)
	}
	return p.Clone(), nil
}

// SaveProfile replaces the stored profile
func (s *Store) SaveProfile(_ context.Context, profile *domain.Profile) error {
	if profile == nil || profile.UserID == "" {
		return fmt.Errorf("%w: profile requires a user id", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.UserID] = profile.Clone()
	return nil
}

// ListProfiles returns every profile ordered by user id
func (s *Store) ListProfiles(_ context.Context) ([]*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// CreateTransaction stores a new transaction
func (s *Store) CreateTransaction(_ context.Context, tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[tx.Hash]; exists {
		return fmt.Errorf("%w: duplicate transaction %s", domain.ErrInvalidInput, tx.Hash)
	}
	s.transactions[tx.Hash] = *tx
	return nil
}

// DeleteTransaction removes a transaction; unknown hashes are ignored
func (s *Store) DeleteTransaction(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.transactions, hash)
	return nil
}

// GetTransaction returns a transaction by hash
func (s *Store) GetTransaction(_ context.Context, hash string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[hash]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, hash)
	}
	return &tx, nil
}

// ListTransactions returns transactions newest first
func (s *Store) ListTransactions(_ context.Context, userID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, 0)
	for _, tx := range s.transactions {
		if userID == "" || tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Hash < out[j].Hash
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// UpdateConfirmations sets the confirmation count
func (s *Store) UpdateConfirmations(_ context.Context, hash string, confirmations int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[hash]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, hash)
	}
	tx.Confirmations = confirmations
	s.transactions[hash] = tx
	return nil
}

// LogActivity appends an activity entry
func (s *Store) LogActivity(_ context.Context, activity *domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextActivity++
	activity.ID = s.nextActivity
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	s.activity = append(s.activity, *activity)
	return nil
}

// ListActivity returns up to limit entries, newest first
func (s *Store) ListActivity(_ context.Context, limit int) ([]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.activity)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.Activity, 0, limit)
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.activity[i])
	}
	return out, nil
}

// CleanupActivity drops entries older than cutoff
func (s *Store) CleanupActivity(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.activity[:0]
	var removed int64
	for _, a := range s.activity {
		if a.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	s.activity = kept
	return removed, nil
}
