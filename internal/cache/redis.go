package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ebookstore-next/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "eb"

type store struct {
	client *redis.Client
}

var (
	current atomic.Pointer[store]
	prefix  atomic.Value
)

func init() {
	prefix.Store(defaultPrefix)
}

// InitRedis 按配置创建 Redis 客户端，未启用时缓存全部降级为 no-op
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		current.Store(nil)
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	p := strings.TrimSpace(cfg.Prefix)
	if p == "" {
		p = defaultPrefix
	}
	prefix.Store(p)
	current.Store(&store{
		client: redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	})
	return nil
}

// Enabled 缓存是否可用
func Enabled() bool {
	return current.Load() != nil
}

// Client 原始客户端，未启用时为 nil
func Client() *redis.Client {
	if s := current.Load(); s != nil {
		return s.client
	}
	return nil
}

// Ping 检查连通性
func Ping(ctx context.Context) error {
	if s := current.Load(); s != nil {
		return s.client.Ping(ctx).Err()
	}
	return nil
}

// Close 关闭客户端，之后缓存降级为 no-op
func Close() error {
	if s := current.Swap(nil); s != nil {
		return s.client.Close()
	}
	return nil
}

// Key 加上全局前缀
func Key(name string) string {
	p, _ := prefix.Load().(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return p
	}
	return p + ":" + name
}

// Entry 以 JSON 存储的单个缓存项
type Entry string

// Get 命中时解码到 dest
func (e Entry) Get(ctx context.Context, dest interface{}) (bool, error) {
	s := current.Load()
	if s == nil {
		return false, nil
	}
	raw, err := s.client.Get(ctx, Key(string(e))).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set 写入缓存，ttl<=0 时不缓存
func (e Entry) Set(ctx context.Context, value interface{}, ttl time.Duration) error {
	s := current.Load()
	if s == nil || ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, Key(string(e)), payload, ttl).Err()
}

// Invalidate 删除缓存项
func (e Entry) Invalidate(ctx context.Context) error {
	if s := current.Load(); s != nil {
		return s.client.Del(ctx, Key(string(e))).Err()
	}
	return nil
}
