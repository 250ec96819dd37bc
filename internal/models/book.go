package models

import (
	"time"
)

// Book 图书表
type Book struct {
	ID            uint       `gorm:"primarykey" json:"id"`                               // 主键
	Title         string     `gorm:"type:varchar(200);not null;index" json:"title"`      // 书名
	Author        string     `gorm:"type:varchar(100);not null;index" json:"author"`     // 作者
	Description   string     `gorm:"type:text" json:"description"`                       // 简介
	ISBN          string     `gorm:"type:varchar(20)" json:"isbn"`                       // ISBN
	Price         Money      `gorm:"type:decimal(18,2);not null;default:0" json:"price"` // 售价
	Stock         int        `gorm:"not null;default:0" json:"stock"`                    // 库存
	ImageURL      string     `gorm:"type:varchar(500)" json:"image_url"`                 // 封面图片
	PageCount     int        `gorm:"not null;default:0" json:"page_count"`               // 页数
	Publisher     string     `gorm:"type:varchar(100)" json:"publisher"`                 // 出版社
	PublishedDate *time.Time `json:"published_date,omitempty"`                           // 出版日期
	CategoryID    uint       `gorm:"not null;index" json:"category_id"`                  // 分类ID
	IsActive      bool       `gorm:"not null;default:true;index" json:"is_active"`       // 是否上架（false 即软删除）
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt     time.Time  `json:"updated_at"`                                         // 更新时间

	// 关联
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Book) TableName() string {
	return "books"
}
