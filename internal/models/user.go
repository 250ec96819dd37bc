package models

import (
	"strings"
	"time"

	"github.com/ebookstore-next/internal/constants"
)

// User 用户表
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                                 // 主键
	Email        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`  // 邮箱（唯一）
	PasswordHash string     `gorm:"not null" json:"-"`                                    // 密码哈希（不返回给前端）
	FirstName    string     `gorm:"type:varchar(50)" json:"first_name"`                   // 名
	LastName     string     `gorm:"type:varchar(50)" json:"last_name"`                    // 姓
	Phone        string     `gorm:"type:varchar(20)" json:"phone"`                        // 电话
	Address      string     `gorm:"type:varchar(500)" json:"address"`                     // 默认收货地址
	Role         string     `gorm:"type:varchar(20);not null;default:'User'" json:"role"` // 角色（User/Admin）
	LastLoginAt  *time.Time `json:"last_login_at"`                                        // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                           // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u != nil && strings.EqualFold(strings.TrimSpace(u.Role), constants.RoleAdmin)
}

// FullName 姓名
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
