//go:build integration
// +build integration

package session

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ebookstore-next/internal/storefront"
	"github.com/ebookstore-next/internal/storefront/cart"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := strings.TrimSpace(os.Getenv("TEST_REDIS_ADDR"))
	if addr == "" {
		t.Skip("skip redis integration test: TEST_REDIS_ADDR is empty")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	store, err := NewRedisStore(client, "ebtest", time.Minute)
	require.NoError(t, err)
	return store
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()
	sid := NewID()

	c := cart.New()
	c.Items = append(c.Items, cart.Item{BookID: 7, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")})
	c.Recalculate()
	require.NoError(t, store.Save(ctx, sid, c))

	loaded, err := store.Load(ctx, sid)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.True(t, loaded.TotalAmount.Equal(decimal.RequireFromString("20.00")))

	require.NoError(t, store.SavePrincipal(ctx, sid, &storefront.Principal{UserID: 9, Role: "User"}))
	p, err := store.LoadPrincipal(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, uint(9), p.UserID)

	require.NoError(t, store.PushFlash(ctx, sid, Flash{Level: "info", Message: "hi"}))
	flashes, err := store.PopFlashes(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, flashes, 1)
	flashes, err = store.PopFlashes(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, flashes)
}
