package service

import "github.com/ebookstore-next/internal/constants"

// Actor 当前调用者身份，由 JWT 中间件解析
type Actor struct {
	UserID uint
	Role   string
}

// IsAdmin 是否为管理员
func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// CanAccess 普通用户只能访问自己的资源，管理员不受限
func (a Actor) CanAccess(ownerID uint) bool {
	if a.IsAdmin() {
		return true
	}
	return a.UserID != 0 && a.UserID == ownerID
}

func authorize(actor Actor, ownerID uint) error {
	if !actor.CanAccess(ownerID) {
		return ErrForbidden
	}
	return nil
}
