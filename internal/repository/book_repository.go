package repository

import (
	"strings"

	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/models"

	"gorm.io/gorm"
)

// BookRepository 图书数据访问接口
type BookRepository interface {
	List(filter BookListFilter) ([]models.Book, int64, error)
	GetByID(id uint) (*models.Book, error)
	ListByIDs(ids []uint) ([]models.Book, error)
	ListByCategory(categoryID uint, onlyActive bool) ([]models.Book, error)
	ListLowStock(threshold, limit int) ([]models.Book, error)
	Create(book *models.Book) error
	Update(book *models.Book) error
	Deactivate(id uint) (int64, error)
	CountByCategory(categoryID uint) (int64, error)
	WithTx(tx *gorm.DB) BookRepository
}

// GormBookRepository GORM 实现
type GormBookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓库
func NewBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBookRepository) WithTx(tx *gorm.DB) BookRepository {
	if tx == nil {
		return r
	}
	return &GormBookRepository{db: tx}
}

// List 图书列表
func (r *GormBookRepository) List(filter BookListFilter) ([]models.Book, int64, error) {
	var books []models.Book

	query := r.db.Model(&models.Book{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildContainsCondition(r.db, []string{"title", "author"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(search), argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Scopes(paginate(filter.Page, filter.PageSize))

	if err := query.Order(bookOrderClause(filter.OrderBy)).Find(&books).Error; err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// bookOrderClause 排序键转换为 SQL 排序语句，未知键按最新排序
func bookOrderClause(orderBy string) string {
	switch strings.ToLower(strings.TrimSpace(orderBy)) {
	case constants.SortPriceAsc:
		return "price ASC, id ASC"
	case constants.SortPriceDesc:
		return "price DESC, id ASC"
	case constants.SortNameAsc:
		return "title ASC, id ASC"
	case constants.SortNameDesc:
		return "title DESC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

// GetByID 根据 ID 获取图书（不区分上下架）
func (r *GormBookRepository) GetByID(id uint) (*models.Book, error) {
	return first[models.Book](r.db.Preload("Category"), id)
}

// ListByIDs 批量获取图书
func (r *GormBookRepository) ListByIDs(ids []uint) ([]models.Book, error) {
	if len(ids) == 0 {
		return []models.Book{}, nil
	}
	var books []models.Book
	if err := r.db.Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// ListByCategory 获取分类下的图书
func (r *GormBookRepository) ListByCategory(categoryID uint, onlyActive bool) ([]models.Book, error) {
	var books []models.Book
	query := r.db.Preload("Category").Where("category_id = ?", categoryID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order(bookOrderClause(constants.SortNewest)).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// ListLowStock 获取库存低于阈值的上架图书
func (r *GormBookRepository) ListLowStock(threshold, limit int) ([]models.Book, error) {
	var books []models.Book
	query := r.db.Where("is_active = ? AND stock < ?", true, threshold).Order("stock ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Create 创建图书
func (r *GormBookRepository) Create(book *models.Book) error {
	return r.db.Create(book).Error
}

// Update 更新图书
func (r *GormBookRepository) Update(book *models.Book) error {
	return r.db.Omit("Category").Save(book).Error
}

// Deactivate 软删除图书（is_active=false），返回影响行数
func (r *GormBookRepository) Deactivate(id uint) (int64, error) {
	result := r.db.Model(&models.Book{}).Where("id = ?", id).Update("is_active", false)
	return result.RowsAffected, result.Error
}

// CountByCategory 统计分类下的图书数量（含下架）
func (r *GormBookRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Book{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
