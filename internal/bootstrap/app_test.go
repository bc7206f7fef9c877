package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/osse101/BinhiHeritage_Go/internal/config"
	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// the expirable LRU behind the profile cache never stops its sweeper
var lruSweeper = goleak.IgnoreAnyFunction("github.com/hashicorp/golang-lru/v2/expirable.NewLRU[...].func1")

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Port:                    0,
		APIKey:                  "test-key",
		LogLevel:                "info",
		LogFormat:               "text",
		LogDir:                  filepath.Join(dir, "logs"),
		Environment:             "test",
		ServiceName:             "binhi-test",
		Version:                 "test",
		StorageDriver:           config.StorageMemory,
		SeedDemo:                true,
		CheckoutProcessingDelay: 10 * time.Millisecond,
		ConfirmationInterval:    10 * time.Millisecond,
		CommunityTickInterval:   time.Hour,
		ProfileCacheSize:        16,
		ProfileCacheTTL:         time.Minute,
		EventMaxRetries:         1,
		EventRetryDelay:         time.Millisecond,
		EventDeadLetterPath:     filepath.Join(dir, "deadletter.jsonl"),
		ActivityRetentionDays:   30,
		SessionTTL:              time.Hour,
		SessionPruneInterval:    time.Hour,
		SSEKeepalive:            time.Second,
		MaxRequestBytes:         1 << 20,
		RateLimitPerWindow:      1000,
		RateLimitWindow:         time.Minute,
	}
}

func TestApp_AdoptionCompletesInBackground(t *testing.T) {
	defer goleak.VerifyNone(t, lruSweeper)

	ctx := context.Background()
	app, err := NewApp(ctx, testConfig(t))
	require.NoError(t, err)
	app.Start()

	adoption := app.Services.Adoption
	cs, err := adoption.Start(ctx, "juan", 1)
	require.NoError(t, err)
	_, err = adoption.Proceed(ctx, cs.ID)
	require.NoError(t, err)
	_, err = adoption.SelectPayment(ctx, cs.ID, domain.PaymentGCash, "")
	require.NoError(t, err)
	_, err = adoption.Confirm(ctx, cs.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		got, err := adoption.Get(ctx, cs.ID)
		return err == nil && got.Step == domain.StepSuccess
	}, 2*time.Second, 10*time.Millisecond)

	crop, err := app.Services.Catalog.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, crop.Adopted)

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	app.Shutdown(shutdownCtx)
}

func TestApp_ShutdownWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t, lruSweeper)

	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	app.Shutdown(context.Background())
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"session_2026-01-01_00-00-00.log",
		"session_2026-01-02_00-00-00.log",
		"session_2026-01-03_00-00-00.log",
		"notes.txt",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}

	cleanupLogs(dir, 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	assert.ElementsMatch(t, []string{"session_2026-01-03_00-00-00.log", "notes.txt"}, left)
}
