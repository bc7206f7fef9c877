package postgres

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/BinhiHeritage_Go/internal/content"
	"github.com/osse101/BinhiHeritage_Go/internal/database"
	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		terminate = setup(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setup(ctx context.Context) func() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setup: %v\n", r)
		}
	}()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return nil
	}
	terminate := func() { _ = container.Terminate(ctx) }

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return terminate
	}
	pool, err := database.NewPool(ctx, connStr, database.PoolSettings{MaxConns: 10})
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		return terminate
	}
	migrator, err := database.NewMigrator(pool)
	if err == nil {
		err = migrator.Up(ctx)
		_ = migrator.Close()
	}
	if err != nil {
		fmt.Printf("WARNING: Failed to migrate: %v\n", err)
		pool.Close()
		return terminate
	}
	testPool = pool
	return terminate
}

// newTestStore truncates every table and seeds the catalog
func newTestStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}

	ctx := context.Background()
	_, err := testPool.Exec(ctx, `TRUNCATE activity, transactions, profiles, crops RESTART IDENTITY`)
	require.NoError(t, err)

	c, err := content.Load()
	require.NoError(t, err)
	s := NewStore(testPool)
	require.NoError(t, s.SeedCrops(ctx, c.Crops))
	return s
}

func TestStore_Catalog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	crops, err := s.ListCrops(ctx)
	require.NoError(t, err)
	require.Len(t, crops, 6)
	assert.Equal(t, 1, crops[0].ID)
	assert.Equal(t, "Tinawon Rice", crops[0].Name)
	assert.NotEmpty(t, crops[0].Traits.GrowthCycle)

	require.NoError(t, s.MarkAdopted(ctx, 1, "u1"))
	err = s.MarkAdopted(ctx, 1, "u2")
	assert.ErrorIs(t, err, domain.ErrCropAlreadyAdopted)
	err = s.MarkAdopted(ctx, 999, "u2")
	assert.ErrorIs(t, err, domain.ErrCropNotFound)

	crop, err := s.GetCrop(ctx, 1)
	require.NoError(t, err)
	assert.True(t, crop.Adopted)
	assert.Equal(t, "u1", crop.AdoptedBy)

	_, err = s.GetCrop(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrCropNotFound)

	require.NoError(t, s.MarkAdopted(ctx, 2, "u1"))
	require.NoError(t, s.ReleaseAdoption(ctx, 2, "u2"))
	crop, err = s.GetCrop(ctx, 2)
	require.NoError(t, err)
	assert.True(t, crop.Adopted)
	require.NoError(t, s.ReleaseAdoption(ctx, 2, "u1"))
	crop, err = s.GetCrop(ctx, 2)
	require.NoError(t, err)
	assert.False(t, crop.Adopted)
	assert.Empty(t, crop.AdoptedBy)

	// reseeding keeps adoption flags
	c, err := content.Load()
	require.NoError(t, err)
	require.NoError(t, s.SeedCrops(ctx, c.Crops))
	crop, err = s.GetCrop(ctx, 1)
	require.NoError(t, err)
	assert.True(t, crop.Adopted)
}

func TestStore_MarkAdoptedConcurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		success  int
		conflict int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.MarkAdopted(ctx, 2, fmt.Sprintf("u%d", i))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, domain.ErrCropAlreadyAdopted):
				conflict++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, 9, conflict)
}

func TestStore_Profiles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	p := &domain.Profile{
		UserID:          "u1",
		DisplayName:     "Juan",
		WalletProvider:  "metamask",
		WalletAddress:   "0xabc",
		Stats:           domain.UserStats{NFTsOwned: 1, TotalDonated: 15000, Badges: []string{"first-supporter"}, Tokens: 1, TotalXP: 100, Level: 2},
		QuestProgress:   map[string]int{"ifugao": 2},
		VisitedSections: []string{domain.SectionGaleri},
		LastAdoptedCrop: "Tinawon Rice",
	}
	require.NoError(t, s.SaveProfile(ctx, p))

	got, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, p.Stats, got.Stats)
	assert.Equal(t, p.QuestProgress, got.QuestProgress)
	assert.Equal(t, p.VisitedSections, got.VisitedSections)
	assert.Equal(t, "Tinawon Rice", got.LastAdoptedCrop)
	assert.False(t, got.CreatedAt.IsZero())

	p.Stats.Tokens = 7
	p.UpdatedAt = time.Now()
	require.NoError(t, s.SaveProfile(ctx, p))
	require.NoError(t, s.SaveProfile(ctx, &domain.Profile{UserID: "a0"}))

	all, err := s.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a0", all[0].UserID)
	assert.Equal(t, 7, all[1].Stats.Tokens)
	assert.Empty(t, all[0].VisitedSections)
}

func TestStore_Transactions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	older := &domain.Transaction{Hash: "0x01", UserID: "u1", CropID: 1, CropName: "Tinawon Rice", Amount: 15000,
		PaymentMethod: domain.PaymentGCash, WalletAddress: "0xabc", Timestamp: now.Add(-time.Minute),
		BlockNumber: 18_000_001, GasUsed: domain.SimulatedGasUsed, Confirmations: 1}
	newer := *older
	newer.Hash, newer.Timestamp = "0x02", now
	other := *older
	other.Hash, other.UserID = "0x03", "u2"

	for _, tx := range []*domain.Transaction{older, &newer, &other} {
		require.NoError(t, s.CreateTransaction(ctx, tx))
	}

	list, err := s.ListTransactions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "0x02", list[0].Hash)

	all, err := s.ListTransactions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, s.UpdateConfirmations(ctx, "0x01", 12))
	got, err := s.GetTransaction(ctx, "0x01")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Confirmations)
	assert.Equal(t, domain.PaymentGCash, got.PaymentMethod)
	assert.WithinDuration(t, older.Timestamp, got.Timestamp, time.Millisecond)

	assert.ErrorIs(t, s.UpdateConfirmations(ctx, "0xff", 2), domain.ErrTransactionNotFound)
	_, err = s.GetTransaction(ctx, "0xff")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	require.NoError(t, s.DeleteTransaction(ctx, "0x03"))
	_, err = s.GetTransaction(ctx, "0x03")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestStore_Activity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	old := &domain.Activity{Type: "adoption.completed", UserID: "u1", Message: "old", CreatedAt: now.Add(-48 * time.Hour)}
	fresh := &domain.Activity{Type: "badge.unlocked", Message: "fresh", CreatedAt: now}
	require.NoError(t, s.LogActivity(ctx, old))
	require.NoError(t, s.LogActivity(ctx, fresh))
	assert.NotZero(t, old.ID)
	assert.NotEqual(t, old.ID, fresh.ID)

	feed, err := s.ListActivity(ctx, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "fresh", feed[0].Message)
	assert.Equal(t, "u1", feed[1].UserID)

	feed, err = s.ListActivity(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, feed, 1)

	n, err := s.CleanupActivity(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
