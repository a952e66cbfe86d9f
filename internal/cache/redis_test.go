package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Total int64 `json:"total"`
}

func TestDisabledCacheIsNoop(t *testing.T) {
	original := RedisClient
	RedisClient = nil
	defer func() { RedisClient = original }()

	ctx := context.Background()
	var out sample

	hit, err := GetJSON(ctx, StatsKey(1), &out)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, SetJSON(ctx, StatsKey(1), sample{Total: 3}, time.Minute))
	assert.NoError(t, InvalidateStats(ctx, 1))
}

func TestRedisRoundTripAndInvalidate(t *testing.T) {
	srv := miniredis.RunT(t)

	original := RedisClient
	require.NoError(t, InitRedis(srv.Addr(), "", 30*time.Second))
	defer func() {
		_ = Close()
		RedisClient = original
	}()

	ctx := context.Background()
	require.NoError(t, SetJSON(ctx, StatsKey(7), sample{Total: 3}, StatsTTL))

	var out sample
	hit, err := GetJSON(ctx, StatsKey(7), &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(3), out.Total)

	srv.FastForward(31 * time.Second)
	hit, err = GetJSON(ctx, StatsKey(7), &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, SetJSON(ctx, StatsKey(7), sample{Total: 4}, StatsTTL))
	require.NoError(t, InvalidateStats(ctx, 7))
	hit, err = GetJSON(ctx, StatsKey(7), &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInitRedisUnreachable(t *testing.T) {
	original := RedisClient
	defer func() { RedisClient = original }()

	err := InitRedis("127.0.0.1:1", "", time.Minute)
	assert.Error(t, err)
}

func TestStatsKey(t *testing.T) {
	assert.Equal(t, "stats:user:42", StatsKey(42))
}
