package service

import (
	"context"
	"strings"
	"time"

	"github.com/ebookstore-next/internal/cache"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/models"
	"github.com/ebookstore-next/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo     repository.CategoryRepository
	bookRepo repository.BookRepository
	cacheTTL time.Duration
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, bookRepo repository.BookRepository, cacheTTL time.Duration) *CategoryService {
	return &CategoryService{repo: repo, bookRepo: bookRepo, cacheTTL: cacheTTL}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name        string
	Description string
}

// List 获取分类列表（优先读取缓存）
func (s *CategoryService) List() ([]models.Category, error) {
	ctx := context.Background()
	var cached []models.Category
	if hit, err := cache.CategoryList.Get(ctx, &cached); err != nil {
		logger.Warnw("category_cache_read_failed", "error", err)
	} else if hit {
		return cached, nil
	}

	categories, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if err := cache.CategoryList.Set(ctx, categories, s.cacheTTL); err != nil {
		logger.Warnw("category_cache_write_failed", "error", err)
	}
	return categories, nil
}

// GetWithBooks 获取分类及其上架图书
func (s *CategoryService) GetWithBooks(id uint) (*models.Category, error) {
	category, err := s.find(id)
	if err != nil {
		return nil, err
	}
	books, err := s.bookRepo.ListByCategory(id, true)
	if err != nil {
		return nil, err
	}
	for i := range books {
		books[i].Category = nil
	}
	category.Books = books
	return category, nil
}

func (s *CategoryService) find(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// checkName 名称去空白后不能为空，且与其他分类不重名（忽略大小写）
func (s *CategoryService) checkName(raw string, excludeID uint) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrInvalidInput
	}
	count, err := s.repo.CountByName(name, excludeID)
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrCategoryExists
	}
	return name, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name, err := s.checkName(input.Name, 0)
	if err != nil {
		return nil, err
	}
	category := &models.Category{Name: name, Description: strings.TrimSpace(input.Description)}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	s.invalidate()
	return category, nil
}

// Update 更新名称与描述
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if category.Name, err = s.checkName(input.Name, id); err != nil {
		return nil, err
	}
	category.Description = strings.TrimSpace(input.Description)
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	s.invalidate()
	return category, nil
}

// Delete 物理删除，分类下仍有图书（含下架）时返回 ErrCategoryInUse
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.find(id); err != nil {
		return err
	}
	count, err := s.bookRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CategoryService) invalidate() {
	if err := cache.CategoryList.Invalidate(context.Background()); err != nil {
		logger.Warnw("category_cache_invalidate_failed", "error", err)
	}
	invalidateDashboard()
}
