package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lancei-admin/internal/infrastructure/session"
	"github.com/jhoicas/lancei-admin/pkg/config"
)

// unreachableClient cliente hacia un puerto cerrado, sin reintentos.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestNewRedisStore_PingFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := session.NewRedisStore(ctx, config.RedisConfig{Addr: "127.0.0.1:1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping 127.0.0.1:1")
}

func TestRedisStore_ErrorsAreWrappedNotTreatedAsMissing(t *testing.T) {
	store := session.NewRedisStoreFromClient(unreachableClient())
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	err := store.Create(ctx, "s1", "p1", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session create")

	_, ok, err := store.Lookup(ctx, "s1")
	require.Error(t, err, "una caída de Redis no equivale a sesión inexistente")
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "session lookup")

	err = store.Delete(ctx, "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session delete")
}

// Con REDIS_TEST_ADDR apuntando a un Redis real se prueba el ciclo completo.
func TestRedisStore_Lifecycle(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	ctx := context.Background()
	store, err := session.NewRedisStore(ctx, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	sid := uuid.New().String()

	require.NoError(t, store.Create(ctx, sid, "p1", time.Minute))
	id, ok, err := store.Lookup(ctx, sid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "p1", id)

	require.NoError(t, store.Delete(ctx, sid))
	_, ok, err = store.Lookup(ctx, sid)
	require.NoError(t, err)
	assert.False(t, ok)
}
