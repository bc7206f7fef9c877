package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

func testCrops() []domain.Crop {
	return []domain.Crop{
		{ID: 2, Name: "Peking Corn", Rarity: domain.RarityMahalagang, PreservationValue: 8800},
		{ID: 1, Name: "Tinawon Rice", Rarity: domain.RarityAlamat, PreservationValue: 12500},
		{ID: 3, Name: "Kapeng Barako", Rarity: domain.RarityBihira, PreservationValue: 15000, Adopted: true},
	}
}

func TestStore_Catalog(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testCrops())

	crops, err := s.ListCrops(ctx)
	require.NoError(t, err)
	require.Len(t, crops, 3)
	assert.Equal(t, 1, crops[0].ID)
	assert.Equal(t, 3, crops[2].ID)

	_, err = s.GetCrop(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrCropNotFound)

	require.NoError(t, s.MarkAdopted(ctx, 1, "u1"))
	c, err := s.GetCrop(ctx, 1)
	require.NoError(t, err)
	assert.True(t, c.Adopted)
	assert.Equal(t, "u1", c.AdoptedBy)

	assert.ErrorIs(t, s.MarkAdopted(ctx, 1, "u2"), domain.ErrCropAlreadyAdopted)
	assert.ErrorIs(t, s.MarkAdopted(ctx, 3, "u2"), domain.ErrCropAlreadyAdopted)
	assert.ErrorIs(t, s.MarkAdopted(ctx, 42, "u2"), domain.ErrCropNotFound)
}

func TestStore_MarkAdoptedOnlyOnce(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testCrops())

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.MarkAdopted(ctx, 2, "racer") == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestStore_ReleaseAdoption(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testCrops())
	require.NoError(t, s.MarkAdopted(ctx, 1, "u1"))

	// only the holder can release
	require.NoError(t, s.ReleaseAdoption(ctx, 1, "u2"))
	c, err := s.GetCrop(ctx, 1)
	require.NoError(t, err)
	assert.True(t, c.Adopted)

	require.NoError(t, s.ReleaseAdoption(ctx, 1, "u1"))
	c, err = s.GetCrop(ctx, 1)
	require.NoError(t, err)
	assert.False(t, c.Adopted)
	assert.Empty(t, c.AdoptedBy)
	assert.NoError(t, s.MarkAdopted(ctx, 1, "u2"))

	assert.ErrorIs(t, s.ReleaseAdoption(ctx, 42, "u1"), domain.ErrCropNotFound)
}

func TestStore_ProfilesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)

	_, err := s.GetProfile(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.ErrorIs(t, s.SaveProfile(ctx, &domain.Profile{}), domain.ErrInvalidInput)

	p := &domain.Profile{UserID: "u1", Stats: domain.UserStats{Tokens: 1, Badges: []string{"A"}}}
	require.NoError(t, s.SaveProfile(ctx, p))
	p.Stats.Badges[0] = "mutated"

	got, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got.Stats.Badges)

	got.Stats.Tokens = 99
	again, _ := s.GetProfile(ctx, "u1")
	assert.Equal(t, 1, again.Stats.Tokens)

	require.NoError(t, s.SaveProfile(ctx, &domain.Profile{UserID: "a"}))
	all, err := s.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].UserID)
}

func TestStore_Transactions(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	now := time.Now()

	require.NoError(t, s.CreateTransaction(ctx, &domain.Transaction{Hash: "0x1", UserID: "u1", Timestamp: now.Add(-time.Minute), Confirmations: 1}))
	require.NoError(t, s.CreateTransaction(ctx, &domain.Transaction{Hash: "0x2", UserID: "u1", Timestamp: now, Confirmations: 1}))
	require.NoError(t, s.CreateTransaction(ctx, &domain.Transaction{Hash: "0x3", UserID: "u2", Timestamp: now}))
	assert.ErrorIs(t, s.CreateTransaction(ctx, &domain.Transaction{Hash: "0x1"}), domain.ErrInvalidInput)

	list, err := s.ListTransactions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "0x2", list[0].Hash)

	all, _ := s.ListTransactions(ctx, "")
	assert.Len(t, all, 3)

	require.NoError(t, s.UpdateConfirmations(ctx, "0x1", 7))
	tx, err := s.GetTransaction(ctx, "0x1")
	require.NoError(t, err)
	assert.Equal(t, 7, tx.Confirmations)

	assert.ErrorIs(t, s.UpdateConfirmations(ctx, "0xnope", 2), domain.ErrTransactionNotFound)
	_, err = s.GetTransaction(ctx, "0xnope")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	require.NoError(t, s.DeleteTransaction(ctx, tx.Hash))
	_, err = s.GetTransaction(ctx, tx.Hash)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	assert.NoError(t, s.DeleteTransaction(ctx, "0xnope"))
}

func TestStore_Activity(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	old := time.Now().Add(-48 * time.Hour)

	require.NoError(t, s.LogActivity(ctx, &domain.Activity{Message: "old", CreatedAt: old}))
	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, s.LogActivity(ctx, &domain.Activity{Message: msg}))
	}

	latest, err := s.ListActivity(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "three", latest[0].Message)
	assert.Equal(t, int64(4), latest[0].ID)

	removed, err := s.CleanupActivity(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	all, _ := s.ListActivity(ctx, 0)
	assert.Len(t, all, 3)
}
