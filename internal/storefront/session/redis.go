package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ebookstore-next/internal/storefront"
	"github.com/ebookstore-next/internal/storefront/cart"

	"github.com/redis/go-redis/v9"
)

// RedisStore 基于 Redis 的会话存储，每次写入刷新过期时间
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "eb"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}, nil
}

func (s *RedisStore) key(kind, sid string) string {
	return fmt.Sprintf("%s:session:%s:%s", s.prefix, sid, kind)
}

func (s *RedisStore) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *RedisStore) setJSON(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, s.ttl).Err()
}

// Load 读取购物车
func (s *RedisStore) Load(ctx context.Context, sid string) (*cart.Cart, error) {
	c := cart.New()
	if _, err := s.getJSON(ctx, s.key("cart", sid), c); err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []cart.Item{}
	}
	return c, nil
}

// Save 保存购物车
func (s *RedisStore) Save(ctx context.Context, sid string, c *cart.Cart) error {
	return s.setJSON(ctx, s.key("cart", sid), c)
}

// LoadPrincipal 读取登录身份
func (s *RedisStore) LoadPrincipal(ctx context.Context, sid string) (*storefront.Principal, error) {
	var p storefront.Principal
	found, err := s.getJSON(ctx, s.key("user", sid), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// SavePrincipal 保存登录身份
func (s *RedisStore) SavePrincipal(ctx context.Context, sid string, principal *storefront.Principal) error {
	if principal == nil {
		return s.ClearPrincipal(ctx, sid)
	}
	return s.setJSON(ctx, s.key("user", sid), principal)
}

// ClearPrincipal 退出登录
func (s *RedisStore) ClearPrincipal(ctx context.Context, sid string) error {
	return s.client.Del(ctx, s.key("user", sid)).Err()
}

// PushFlash 追加提示消息
func (s *RedisStore) PushFlash(ctx context.Context, sid string, flash Flash) error {
	raw, err := json.Marshal(flash)
	if err != nil {
		return err
	}
	key := s.key("flash", sid)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, raw)
	pipe.Expire(ctx, key, s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// PopFlashes 取出并清空提示消息
func (s *RedisStore) PopFlashes(ctx context.Context, sid string) ([]Flash, error) {
	key := s.key("flash", sid)
	pipe := s.client.TxPipeline()
	rangeCmd := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	values := rangeCmd.Val()
	if len(values) == 0 {
		return nil, nil
	}
	flashes := make([]Flash, 0, len(values))
	for _, value := range values {
		var flash Flash
		if err := json.Unmarshal([]byte(value), &flash); err != nil {
			continue
		}
		flashes = append(flashes, flash)
	}
	return flashes, nil
}
