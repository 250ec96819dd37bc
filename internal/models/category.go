package models

import (
	"time"
)

// Category 图书分类表
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 分类名称（唯一）
	Description string    `gorm:"type:varchar(500)" json:"description"`               // 分类描述
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                            // 创建时间

	// 关联
	Books []Book `gorm:"foreignKey:CategoryID" json:"books,omitempty"` // 分类下的图书
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
