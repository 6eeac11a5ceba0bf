package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewClientFromRedis(rdb, "development", zap.NewNop()), mr
}

func TestClientSetGet(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	err := client.Set(ctx, "staging:test:key", "value", time.Minute)
	require.NoError(t, err)

	val, err := client.Get(ctx, "staging:test:key")
	require.NoError(t, err)
	assert.Equal(t, "value", val)
}

func TestClientGetMissing(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Get(context.Background(), "staging:absent")
	assert.ErrorIs(t, err, ErrNil)
}

func TestClientDelete(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, client.Set(ctx, "b", "2", time.Minute))

	require.NoError(t, client.Delete(ctx, "a", "b"))

	n, err := client.Exists(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestClientSetNX(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	ok, err := client.SetNX(ctx, "lock", "owner-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.SetNX(ctx, "lock", "owner-2", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	val, err := client.Get(ctx, "lock")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", val)
}

func TestClientTTLExpiry(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "ephemeral", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := client.Get(ctx, "ephemeral")
	assert.ErrorIs(t, err, ErrNil)
}

func TestClientHealth(t *testing.T) {
	client, mr := newTestClient(t)

	assert.NoError(t, client.Health(context.Background()))

	mr.Close()
	assert.Error(t, client.Health(context.Background()))
}
