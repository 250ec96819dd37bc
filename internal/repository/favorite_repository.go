package repository

import (

	"github.com/ebookstore-next/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository 收藏数据访问接口
type FavoriteRepository interface {
	ListByUser(userID uint) ([]models.Favorite, error)
	GetByID(id uint) (*models.Favorite, error)
	GetByUserAndBook(userID, bookID uint) (*models.Favorite, error)
	Create(favorite *models.Favorite) error
	Delete(id uint) (int64, error)
	DeleteByUserAndBook(userID, bookID uint) (int64, error)
}

// GormFavoriteRepository GORM 实现
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏仓库
func NewFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// ListByUser 用户收藏列表（含图书与分类）
func (r *GormFavoriteRepository) ListByUser(userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.db.Preload("Book").Preload("Book.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// GetByID 根据 ID 获取收藏
func (r *GormFavoriteRepository) GetByID(id uint) (*models.Favorite, error) {
	return first[models.Favorite](r.db, id)
}

// GetByUserAndBook 查询用户对某本书的收藏
func (r *GormFavoriteRepository) GetByUserAndBook(userID, bookID uint) (*models.Favorite, error) {
	return first[models.Favorite](r.db.Where("user_id = ? AND book_id = ?", userID, bookID))
}

// Create 创建收藏
func (r *GormFavoriteRepository) Create(favorite *models.Favorite) error {
	return r.db.Omit("User", "Book").Create(favorite).Error
}

// Delete 删除收藏
func (r *GormFavoriteRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&models.Favorite{}, id)
	return result.RowsAffected, result.Error
}

// DeleteByUserAndBook 按用户与图书删除收藏
func (r *GormFavoriteRepository) DeleteByUserAndBook(userID, bookID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&models.Favorite{})
	return result.RowsAffected, result.Error
}
