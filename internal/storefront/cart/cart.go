// Package cart 会话购物车
package cart

import (
	"github.com/shopspring/decimal"
)

// MaxQuantity 单行数量上限
const MaxQuantity = 99

// Item 购物车行，同一图书只出现一次
type Item struct {
	BookID    uint            `json:"book_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
}

// Subtotal 行小计
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart 购物车，按加入顺序保存
type Cart struct {
	Items       []Item          `json:"items"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// New 空购物车
func New() *Cart {
	return &Cart{Items: []Item{}}
}

// IsEmpty 是否为空
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Recalculate 按行数据重新计算合计
func (c *Cart) Recalculate() {
	if c == nil {
		return
	}
	totalItems := 0
	totalAmount := decimal.Zero
	for _, item := range c.Items {
		totalItems += item.Quantity
		totalAmount = totalAmount.Add(item.Subtotal())
	}
	c.TotalItems = totalItems
	c.TotalAmount = totalAmount
}

func (c *Cart) indexOf(bookID uint) int {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			return i
		}
	}
	return -1
}

func (c *Cart) remove(bookID uint) bool {
	idx := c.indexOf(bookID)
	if idx < 0 {
		return false
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	return true
}

// Clone 深拷贝
func (c *Cart) Clone() *Cart {
	if c == nil {
		return New()
	}
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	return &Cart{Items: items, TotalItems: c.TotalItems, TotalAmount: c.TotalAmount}
}
