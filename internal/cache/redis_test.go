package cache

import (
	"context"
	"testing"
	"time"

	"github.com/ebookstore-next/internal/config"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if Enabled() || Client() != nil {
		t.Fatalf("cache should be disabled")
	}
	ctx := context.Background()
	var dest []string
	hit, err := CategoryList.Get(ctx, &dest)
	if err != nil || hit {
		t.Fatalf("disabled cache should miss without error: hit=%v err=%v", hit, err)
	}
	if err := Dashboard.Set(ctx, map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("disabled set should be a no-op: %v", err)
	}
	if err := Dashboard.Invalidate(ctx); err != nil {
		t.Fatalf("disabled del should be a no-op: %v", err)
	}
	if err := Ping(ctx); err != nil {
		t.Fatalf("disabled ping should be a no-op: %v", err)
	}
	if err := Close(); err != nil {
		t.Fatalf("closing disabled cache should be a no-op: %v", err)
	}
}

func TestKeyUsesPrefix(t *testing.T) {
	old := prefix.Load()
	t.Cleanup(func() { prefix.Store(old) })
	prefix.Store("eb")
	if got := Key(" catalog:categories "); got != "eb:catalog:categories" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := Key(""); got != "eb" {
		t.Fatalf("unexpected empty key: %s", got)
	}
}

func TestInitRedisAppliesDefaults(t *testing.T) {
	old := prefix.Load()
	t.Cleanup(func() {
		_ = Close()
		prefix.Store(old)
	})
	if err := InitRedis(&config.RedisConfig{Enabled: true, Prefix: " shop "}); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !Enabled() {
		t.Fatalf("cache should be enabled")
	}
	if got := Client().Options().Addr; got != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr: %s", got)
	}
	if got := Key("x"); got != "shop:x" {
		t.Fatalf("unexpected key: %s", got)
	}
}
