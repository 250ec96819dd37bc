package service

import (
	"github.com/ebookstore-next/internal/models"
	"github.com/ebookstore-next/internal/repository"
)

// FavoriteService 收藏服务
type FavoriteService struct {
	repo     repository.FavoriteRepository
	bookRepo repository.BookRepository
}

// NewFavoriteService 创建收藏服务
func NewFavoriteService(repo repository.FavoriteRepository, bookRepo repository.BookRepository) *FavoriteService {
	return &FavoriteService{repo: repo, bookRepo: bookRepo}
}

// ListByUser 用户收藏列表
func (s *FavoriteService) ListByUser(actor Actor, userID uint) ([]models.Favorite, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(userID)
}

// Add 收藏图书，重复收藏返回 ErrFavoriteExists
func (s *FavoriteService) Add(actor Actor, userID, bookID uint) (*models.Favorite, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrNotFound
	}
	if !book.IsActive {
		return nil, ErrBookInactive
	}

	exist, err := s.repo.GetByUserAndBook(userID, bookID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrFavoriteExists
	}

	favorite := &models.Favorite{UserID: userID, BookID: bookID}
	if err := s.repo.Create(favorite); err != nil {
		// 并发重复收藏由唯一索引兜底
		if again, lookupErr := s.repo.GetByUserAndBook(userID, bookID); lookupErr == nil && again != nil {
			return nil, ErrFavoriteExists
		}
		return nil, err
	}
	favorite.Book = book
	return favorite, nil
}

// Remove 按收藏 ID 删除
func (s *FavoriteService) Remove(actor Actor, id uint) error {
	favorite, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if favorite == nil {
		return ErrNotFound
	}
	if err := authorize(actor, favorite.UserID); err != nil {
		return err
	}
	_, err = s.repo.Delete(id)
	return err
}

// RemoveByUserAndBook 按用户与图书删除收藏
func (s *FavoriteService) RemoveByUserAndBook(actor Actor, userID, bookID uint) error {
	if err := authorize(actor, userID); err != nil {
		return err
	}
	affected, err := s.repo.DeleteByUserAndBook(userID, bookID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
