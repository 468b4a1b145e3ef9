package lease

import (
	"context"
	"testing"
	"time"

	"blog_backend/internal/platform/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leaseKey = "keepalive:lease"

func TestRedisLeaseSinglePeriodOwner(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	first := NewRedisLease(rdb, leaseKey, time.Minute)
	second := NewRedisLease(rdb, leaseKey, time.Minute)

	ok, err := first.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = second.TryAcquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	owner, err := mr.Get(leaseKey)
	require.NoError(t, err)
	assert.Equal(t, first.owner, owner)
	assert.Equal(t, time.Minute, mr.TTL(leaseKey))

	// Not released early: the holder itself cannot re-acquire inside the period.
	ok, err = first.TryAcquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(time.Minute)
	ok, err = second.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLeaseUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	ok, err := NewRedisLease(rdb, leaseKey, time.Minute).TryAcquire(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestConnectRedis(t *testing.T) {
	rdb, err := ConnectRedis(context.Background(), &config.Config{})
	require.NoError(t, err)
	assert.Nil(t, rdb)

	mr := miniredis.RunT(t)
	rdb, err = ConnectRedis(context.Background(), &config.Config{RedisAddr: mr.Addr()})
	require.NoError(t, err)
	require.NotNil(t, rdb)
	CloseRedis(rdb)
}
