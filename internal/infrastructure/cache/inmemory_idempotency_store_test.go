package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/proforma/backend/internal/infrastructure/config"
)

func TestInMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("first mark wins", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		first, err := store.MarkProcessed(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, first)

		second, err := store.MarkProcessed(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, second)
	})

	t.Run("is processed", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		processed, err := store.IsProcessed(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, processed)

		_, err = store.MarkProcessed(ctx, "key-1", time.Minute)
		require.NoError(t, err)

		processed, err = store.IsProcessed(ctx, "key-1")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("expired keys are accepted again", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.MarkProcessed(ctx, "key-1", time.Millisecond)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		processed, err := store.IsProcessed(ctx, "key-1")
		require.NoError(t, err)
		assert.False(t, processed)

		again, err := store.MarkProcessed(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, again)
	})

	t.Run("cleanup evicts expired entries", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.MarkProcessed(ctx, "key-1", time.Millisecond)
		require.NoError(t, err)
		_, err = store.MarkProcessed(ctx, "key-2", time.Hour)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		store.cleanup()

		assert.Equal(t, 1, store.Size())
	})

	t.Run("concurrent marks admit exactly one", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		const workers = 16
		var wg sync.WaitGroup
		results := make(chan bool, workers)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := store.MarkProcessed(ctx, "shared-key", time.Minute)
				assert.NoError(t, err)
				results <- ok
			}()
		}
		wg.Wait()
		close(results)

		wins := 0
		for ok := range results {
			if ok {
				wins++
			}
		}
		assert.Equal(t, 1, wins)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		require.NoError(t, store.Close())
		require.NoError(t, store.Close())
	})
}

func TestNewIdempotencyStore(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		store, err := NewIdempotencyStore(
			config.IdempotencyConfig{Backend: "memory"},
			config.RedisConfig{},
			zap.NewNop(),
		)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("empty backend defaults to memory", func(t *testing.T) {
		store, err := NewIdempotencyStore(
			config.IdempotencyConfig{},
			config.RedisConfig{},
			zap.NewNop(),
		)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("unknown backend errors", func(t *testing.T) {
		_, err := NewIdempotencyStore(
			config.IdempotencyConfig{Backend: "memcached"},
			config.RedisConfig{},
			zap.NewNop(),
		)
		require.Error(t, err)
		assert.Contains(t, fmt.Sprint(err), "unknown idempotency backend")
	})
}
