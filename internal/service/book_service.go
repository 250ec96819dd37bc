package service

import (
	"context"
	"strings"
	"time"

	"github.com/ebookstore-next/internal/cache"
	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/models"
	"github.com/ebookstore-next/internal/repository"
)

// BookService 图书业务服务
type BookService struct {
	repo         repository.BookRepository
	categoryRepo repository.CategoryRepository
}

// NewBookService 创建图书服务
func NewBookService(repo repository.BookRepository, categoryRepo repository.CategoryRepository) *BookService {
	return &BookService{repo: repo, categoryRepo: categoryRepo}
}

// BookInput 创建/更新图书输入
type BookInput struct {
	Title         string
	Author        string
	Description   string
	ISBN          string
	Price         models.Money
	Stock         int
	ImageURL      string
	PageCount     int
	Publisher     string
	PublishedDate *time.Time
	CategoryID    uint
	IsActive      *bool
}

// ListPublic 获取上架图书列表
func (s *BookService) ListPublic(categoryID uint, search, orderBy string, page, pageSize int) ([]models.Book, int64, error) {
	filter := repository.BookListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		OnlyActive:   true,
		WithCategory: true,
		OrderBy:      orderBy,
	}
	return s.repo.List(filter)
}

// ListAdmin 管理端图书列表（含下架）
func (s *BookService) ListAdmin(categoryID uint, search string, page, pageSize int) ([]models.Book, int64, error) {
	filter := repository.BookListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		WithCategory: true,
	}
	return s.repo.List(filter)
}

// GetByID 获取图书详情，不区分上下架
func (s *BookService) GetByID(id uint) (*models.Book, error) {
	book, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrNotFound
	}
	return book, nil
}

// ListByCategory 获取分类下的上架图书
func (s *BookService) ListByCategory(categoryID uint) ([]models.Book, error) {
	return s.repo.ListByCategory(categoryID, true)
}

// Create 创建图书
func (s *BookService) Create(input BookInput) (*models.Book, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	book := models.Book{IsActive: true}
	applyBookInput(&book, input)
	if err := s.repo.Create(&book); err != nil {
		return nil, err
	}
	// is_active 带 default:true，零值 false 需要单独写入
	if input.IsActive != nil && !*input.IsActive {
		if _, err := s.repo.Deactivate(book.ID); err != nil {
			return nil, err
		}
		book.IsActive = false
	}
	invalidateDashboard()
	return &book, nil
}

// Update 更新图书
func (s *BookService) Update(id uint, input BookInput) (*models.Book, error) {
	book, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrNotFound
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	applyBookInput(book, input)
	book.Category = nil
	if err := s.repo.Update(book); err != nil {
		return nil, err
	}
	invalidateDashboard()
	return s.GetByID(id)
}

// Delete 软删除图书（下架），历史订单仍可引用
func (s *BookService) Delete(id uint) error {
	affected, err := s.repo.Deactivate(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	invalidateDashboard()
	return nil
}

func (s *BookService) validateInput(input BookInput) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Author) == "" {
		return ErrInvalidInput
	}
	if input.Price.IsNegative() || input.Stock < 0 || input.PageCount < 0 {
		return ErrInvalidInput
	}
	if input.CategoryID == 0 {
		return ErrCategoryNotFound
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

func applyBookInput(book *models.Book, input BookInput) {
	book.Title = strings.TrimSpace(input.Title)
	book.Author = strings.TrimSpace(input.Author)
	book.Description = strings.TrimSpace(input.Description)
	book.ISBN = strings.TrimSpace(input.ISBN)
	book.Price = models.NewMoneyFromDecimal(input.Price.Decimal)
	book.Stock = input.Stock
	book.ImageURL = strings.TrimSpace(input.ImageURL)
	if book.ImageURL == "" {
		book.ImageURL = constants.DefaultBookImage
	}
	book.PageCount = input.PageCount
	book.Publisher = strings.TrimSpace(input.Publisher)
	book.PublishedDate = input.PublishedDate
	book.CategoryID = input.CategoryID
	if input.IsActive != nil {
		book.IsActive = *input.IsActive
	}
}

func invalidateDashboard() {
	if err := cache.Dashboard.Invalidate(context.Background()); err != nil {
		logger.Warnw("dashboard_cache_invalidate_failed", "error", err)
	}
}
