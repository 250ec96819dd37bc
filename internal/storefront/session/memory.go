package session

import (
	"context"
	"sync"
	"time"

	"github.com/ebookstore-next/internal/storefront"
	"github.com/ebookstore-next/internal/storefront/cart"
)

// sweepEvery 每隔多少次写入清理一次过期会话
const sweepEvery = 128

type memoryEntry struct {
	cart      *cart.Cart
	principal *storefront.Principal
	flashes   []Flash
	expiresAt time.Time
}

// MemoryStore 进程内会话存储，未启用 Redis 时使用
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*memoryEntry
	writes  int
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*memoryEntry),
	}
}

// entry 获取未过期的会话，create 为 true 时不存在则创建并续期
func (s *MemoryStore) entry(sid string, create bool) *memoryEntry {
	now := s.now()
	if create {
		s.writes++
		if s.writes%sweepEvery == 0 {
			s.sweep(now)
		}
	}
	e, ok := s.entries[sid]
	if ok && s.ttl > 0 && now.After(e.expiresAt) {
		delete(s.entries, sid)
		ok = false
	}
	if !ok {
		if !create {
			return nil
		}
		e = &memoryEntry{}
		s.entries[sid] = e
	}
	if create {
		e.expiresAt = now.Add(s.ttl)
	}
	return e
}

func (s *MemoryStore) sweep(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for sid, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, sid)
		}
	}
}

// Load 读取购物车
func (s *MemoryStore) Load(_ context.Context, sid string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(sid, false)
	if e == nil || e.cart == nil {
		return cart.New(), nil
	}
	return e.cart.Clone(), nil
}

// Save 保存购物车
func (s *MemoryStore) Save(_ context.Context, sid string, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(sid, true).cart = c.Clone()
	return nil
}

// LoadPrincipal 读取登录身份
func (s *MemoryStore) LoadPrincipal(_ context.Context, sid string) (*storefront.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(sid, false)
	if e == nil || e.principal == nil {
		return nil, nil
	}
	p := *e.principal
	return &p, nil
}

// SavePrincipal 保存登录身份
func (s *MemoryStore) SavePrincipal(_ context.Context, sid string, principal *storefront.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if principal == nil {
		s.entry(sid, true).principal = nil
		return nil
	}
	p := *principal
	s.entry(sid, true).principal = &p
	return nil
}

// ClearPrincipal 退出登录
func (s *MemoryStore) ClearPrincipal(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.entry(sid, false); e != nil {
		e.principal = nil
	}
	return nil
}

// PushFlash 追加提示消息
func (s *MemoryStore) PushFlash(_ context.Context, sid string, flash Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(sid, true)
	e.flashes = append(e.flashes, flash)
	return nil
}

// PopFlashes 取出并清空提示消息
func (s *MemoryStore) PopFlashes(_ context.Context, sid string) ([]Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(sid, false)
	if e == nil || len(e.flashes) == 0 {
		return nil, nil
	}
	flashes := e.flashes
	e.flashes = nil
	return flashes, nil
}
