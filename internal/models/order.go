package models

import (
	"time"
)

// Order 订单表
type Order struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                            // 主键
	UserID          uint      `gorm:"not null;index" json:"user_id"`                                   // 下单用户
	TotalAmount     Money     `gorm:"type:decimal(18,2);not null;default:0" json:"total_amount"`       // 订单总额（明细小计之和）
	Status          string    `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"` // 订单状态（Pending/Completed/Cancelled）
	DeliveryAddress string    `gorm:"type:varchar(500)" json:"delivery_address"`                       // 收货地址
	Notes           string    `gorm:"type:varchar(500)" json:"notes"`                                  // 备注
	OrderDate       time.Time `gorm:"not null;index" json:"order_date"`                                // 下单时间
	UpdatedAt       time.Time `json:"updated_at"`                                                      // 更新时间

	// 关联
	User    *User         `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`    // 下单用户
	Details []OrderDetail `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"details,omitempty"` // 订单明细
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
