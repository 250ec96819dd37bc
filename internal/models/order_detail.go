package models

// OrderDetail 订单明细表
// UnitPrice 为下单时的价格快照，之后不随图书价格变化
type OrderDetail struct {
	ID         uint  `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID    uint  `gorm:"not null;index" json:"order_id"`                           // 订单ID
	BookID     uint  `gorm:"not null;index" json:"book_id"`                            // 图书ID
	Quantity   int   `gorm:"not null" json:"quantity"`                                 // 数量
	UnitPrice  Money `gorm:"type:decimal(18,2);not null;default:0" json:"unit_price"`  // 单价快照
	TotalPrice Money `gorm:"type:decimal(18,2);not null;default:0" json:"total_price"` // 小计

	// 关联
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT" json:"book,omitempty"` // 图书信息
}

// TableName 指定表名
func (OrderDetail) TableName() string {
	return "order_details"
}
