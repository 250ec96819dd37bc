package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/storefront"
)

// Store 购物车持久化，按会话 ID 存取
type Store interface {
	// Load 读取购物车，不存在时返回空购物车
	Load(ctx context.Context, sid string) (*Cart, error)
	Save(ctx context.Context, sid string, cart *Cart) error
}

// Service 购物车服务，所有修改都经由此处
type Service struct {
	store Store
	books storefront.BookFinder
}

// NewService 创建购物车服务
func NewService(store Store, books storefront.BookFinder) *Service {
	return &Service{store: store, books: books}
}

// AddItem 加入购物车，已存在的行累加数量
func (s *Service) AddItem(ctx context.Context, sid string, bookID uint, quantity int) (*Cart, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 || quantity > MaxQuantity {
		return nil, quantityError()
	}
	book, err := s.books.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, storefront.ErrNotFound) {
			return nil, fmt.Errorf("book %d: %w", bookID, storefront.ErrNotFound)
		}
		return nil, fmt.Errorf("lookup book %d: %w: %v", bookID, storefront.ErrStoreFailure, err)
	}
	if book == nil || !book.IsActive {
		return nil, fmt.Errorf("book %d inactive: %w", bookID, storefront.ErrNotFound)
	}

	c, err := s.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if idx := c.indexOf(bookID); idx >= 0 {
		if c.Items[idx].Quantity > MaxQuantity-quantity {
			return nil, quantityError()
		}
		c.Items[idx].Quantity += quantity
	} else {
		c.Items = append(c.Items, Item{
			BookID:    book.ID,
			Title:     book.Title,
			Author:    book.Author,
			UnitPrice: book.Price,
			ImageURL:  book.Image(),
			Quantity:  quantity,
		})
	}
	return s.save(ctx, sid, c)
}

// UpdateQuantity 设置数量，小于 1 等同于移除
func (s *Service) UpdateQuantity(ctx context.Context, sid string, bookID uint, quantity int) (*Cart, error) {
	if quantity < 1 {
		return s.RemoveItem(ctx, sid, bookID)
	}
	if quantity > MaxQuantity {
		return nil, quantityError()
	}
	c, err := s.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	idx := c.indexOf(bookID)
	if idx < 0 {
		c.Recalculate()
		return c, nil
	}
	c.Items[idx].Quantity = quantity
	return s.save(ctx, sid, c)
}

// RemoveItem 移除一行，不存在时无操作
func (s *Service) RemoveItem(ctx context.Context, sid string, bookID uint) (*Cart, error) {
	c, err := s.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	c.remove(bookID)
	return s.save(ctx, sid, c)
}

// Clear 清空购物车
func (s *Service) Clear(ctx context.Context, sid string) error {
	_, err := s.save(ctx, sid, New())
	return err
}

// Snapshot 当前购物车，合计按行数据重新计算
func (s *Service) Snapshot(ctx context.Context, sid string) (*Cart, error) {
	c, err := s.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	c.Recalculate()
	return c, nil
}

// Count 购物车商品总件数
func (s *Service) Count(ctx context.Context, sid string) (int, error) {
	c, err := s.Snapshot(ctx, sid)
	if err != nil {
		return 0, err
	}
	return c.TotalItems, nil
}

func quantityError() error {
	return storefront.NewValidationError(map[string]string{
		"quantity": fmt.Sprintf("must be between 1 and %d", MaxQuantity),
	})
}

func (s *Service) load(ctx context.Context, sid string) (*Cart, error) {
	c, err := s.store.Load(ctx, sid)
	if err != nil {
		logger.Warnw("cart_load_failed", "session_id", sid, "error", err)
		return nil, fmt.Errorf("load cart: %w: %v", storefront.ErrStoreFailure, err)
	}
	if c == nil {
		c = New()
	}
	return c.Clone(), nil
}

func (s *Service) save(ctx context.Context, sid string, c *Cart) (*Cart, error) {
	c.Recalculate()
	if err := s.store.Save(ctx, sid, c); err != nil {
		logger.Warnw("cart_save_failed", "session_id", sid, "error", err)
		return nil, fmt.Errorf("save cart: %w: %v", storefront.ErrStoreFailure, err)
	}
	return c, nil
}
