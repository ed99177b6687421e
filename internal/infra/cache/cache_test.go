package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"agriconnect/config"
	"agriconnect/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAdminInbox(t *testing.T) {
	ctx := context.Background()
	inbox := NewAdminInbox(nil)

	first := &entity.AdminNotification{Type: entity.AdminNotificationNewFarmer, Username: "farmer1"}
	second := &entity.AdminNotification{Type: entity.AdminNotificationSoilTest, Username: "farmer2", BookingID: "ST12345678"}
	require.NoError(t, inbox.Push(ctx, first))
	require.NoError(t, inbox.Push(ctx, second))
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	list, err := inbox.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "farmer2", list[0].Username)
	assert.Equal(t, "farmer1", list[1].Username)

	// callers get copies
	list[0].Read = true
	again, err := inbox.List(ctx)
	require.NoError(t, err)
	assert.False(t, again[0].Read)
}

func TestMemoryAdminInbox_ConcurrentIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	inbox := NewMemoryAdminInbox()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = inbox.Push(ctx, &entity.AdminNotification{Type: entity.AdminNotificationSoilTest})
		}()
	}
	wg.Wait()

	list, err := inbox.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 50)

	seen := map[int64]bool{}
	for i, n := range list {
		assert.False(t, seen[n.ID])
		seen[n.ID] = true
		if i > 0 {
			assert.Less(t, n.ID, list[i-1].ID)
		}
	}
}

func TestMemoryIdempotencyGuard(t *testing.T) {
	ctx := context.Background()
	guard := NewIdempotencyGuard(&config.Config{}, nil).(*memoryIdempotencyGuard)
	assert.Equal(t, defaultIdempotencyTTL, guard.ttl)

	ok, err := guard.Acquire(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.Acquire(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, guard.Release(ctx, "key-1"))
	ok, err = guard.Acquire(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryIdempotencyGuard_Expiry(t *testing.T) {
	ctx := context.Background()
	guard := NewMemoryIdempotencyGuard(time.Minute).(*memoryIdempotencyGuard)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	guard.now = func() time.Time { return now }

	ok, err := guard.Acquire(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	ok, err = guard.Acquire(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok, "expired keys can be reused")
}

func TestIdempotencyGuard_ConfiguredTTL(t *testing.T) {
	cfg := &config.Config{Redis: &config.RedisConfig{IdempotencyTTL: time.Hour}}
	guard := NewIdempotencyGuard(cfg, nil).(*memoryIdempotencyGuard)
	assert.Equal(t, time.Hour, guard.ttl)
}
