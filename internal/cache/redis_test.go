package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/reelread/internal/cache"
	"github.com/oggyb/reelread/internal/config"
)

func setupCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := &config.Config{}
	cfg.Redis.Addr = mr.Addr()
	c := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestJSONRoundTripAndMiss(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCache(t)

	type payload struct {
		Total int      `json:"total"`
		IDs   []uint64 `json:"ids"`
	}

	var got payload
	assert.ErrorIs(t, c.GetJSON(ctx, "k", &got), cache.ErrMiss)

	require.NoError(t, c.SetJSON(ctx, "k", payload{Total: 2, IDs: []uint64{4, 5}}, time.Minute))
	require.NoError(t, c.GetJSON(ctx, "k", &got))
	assert.Equal(t, payload{Total: 2, IDs: []uint64{4, 5}}, got)
}

func TestRecapVersionBumps(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCache(t)

	v, err := c.RecapVersion(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	require.NoError(t, c.InvalidateRecaps(ctx, "u1"))
	v, err = c.RecapVersion(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	assert.NotEqual(t,
		c.KeyForRecap("u1", "movie", 2026, time.September, 0),
		c.KeyForRecap("u1", "movie", 2026, time.September, 1))
}

func TestFriendsCountTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	_, ok, err := c.GetFriendsCount(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.UpdateFriendsCount(ctx, "u1", 3))
	n, ok, err := c.GetFriendsCount(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, time.Hour, mr.TTL(c.KeyForFriendsCount("u1")))
}
