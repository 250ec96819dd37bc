package models

import (
	"time"
)

// Favorite 收藏表，(user_id, book_id) 唯一
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                              // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_book" json:"user_id"`       // 用户ID
	BookID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_book;index" json:"book_id"` // 图书ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                           // 收藏时间

	// 关联
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`              // 用户
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book,omitempty"` // 图书信息
}

// TableName 指定表名
func (Favorite) TableName() string {
	return "favorites"
}
