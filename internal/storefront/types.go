// Package storefront 前台站点的领域类型与协作接口
package storefront

import (
	"context"
	"time"

	"github.com/ebookstore-next/internal/constants"

	"github.com/shopspring/decimal"
)

// Book 前台可见的图书
type Book struct {
	ID            uint            `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Description   string          `json:"description"`
	ISBN          string          `json:"isbn"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	ImageURL      string          `json:"image_url"`
	PageCount     int             `json:"page_count"`
	Publisher     string          `json:"publisher"`
	PublishedDate *time.Time      `json:"published_date,omitempty"`
	CategoryID    uint            `json:"category_id"`
	Category      *Category       `json:"category,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CategoryName 所属分类名称
func (b Book) CategoryName() string {
	if b.Category == nil {
		return ""
	}
	return b.Category.Name
}

// Image 封面地址，缺省时使用占位图
func (b Book) Image() string {
	if b.ImageURL == "" {
		return constants.DefaultBookImage
	}
	return b.ImageURL
}

// Category 图书分类
type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Books       []Book    `json:"books,omitempty"`
}

// ActiveBooks 分类下上架的图书
func (c Category) ActiveBooks() []Book {
	result := make([]Book, 0, len(c.Books))
	for _, book := range c.Books {
		if book.IsActive {
			result = append(result, book)
		}
	}
	return result
}

// OrderLine 订单明细，单价为下单时的快照
type OrderLine struct {
	BookID     uint            `json:"book_id"`
	Title      string          `json:"title,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Order 订单
type Order struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	DeliveryAddress string          `json:"delivery_address"`
	Notes           string          `json:"notes"`
	OrderDate       time.Time       `json:"order_date"`
	Lines           []OrderLine     `json:"details"`
}

// Principal 当前登录的访客身份
type Principal struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

// IsAuthenticated 是否已登录
func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.UserID != 0
}

// IsAdmin 是否为管理员
func (p *Principal) IsAdmin() bool {
	return p.IsAuthenticated() && p.Role == constants.RoleAdmin
}

// BookFilter 图书列表过滤条件
type BookFilter struct {
	CategoryID uint
	Search     string
}

// BookFinder 按 ID 查找图书，不存在时返回 ErrNotFound
type BookFinder interface {
	GetBook(ctx context.Context, id uint) (*Book, error)
}

// CatalogStore 目录只读访问
type CatalogStore interface {
	BookFinder
	ListBooks(ctx context.Context, filter BookFilter) ([]Book, error)
	ListBooksByCategory(ctx context.Context, categoryID uint) ([]Book, error)
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id uint) (*Category, error)
}

// OrderStore 订单写入
type OrderStore interface {
	CreateOrder(ctx context.Context, token string, order Order) (*Order, error)
}
