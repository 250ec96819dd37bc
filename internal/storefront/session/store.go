// Package session 前台会话存储：购物车、登录身份与闪存消息
package session

import (
	"context"

	"github.com/ebookstore-next/internal/storefront"
	"github.com/ebookstore-next/internal/storefront/cart"

	"github.com/google/uuid"
)

// Flash 一次性提示消息
type Flash struct {
	Level   string `json:"level"` // success / info / warning / danger
	Message string `json:"message"`
}

// Store 会话存储
type Store interface {
	cart.Store
	LoadPrincipal(ctx context.Context, sid string) (*storefront.Principal, error)
	SavePrincipal(ctx context.Context, sid string, principal *storefront.Principal) error
	ClearPrincipal(ctx context.Context, sid string) error
	PushFlash(ctx context.Context, sid string, flash Flash) error
	PopFlashes(ctx context.Context, sid string) ([]Flash, error)
}

// NewID 生成会话 ID
func NewID() string {
	return uuid.NewString()
}

// ValidID 校验会话 ID 格式
func ValidID(sid string) bool {
	_, err := uuid.Parse(sid)
	return err == nil
}
