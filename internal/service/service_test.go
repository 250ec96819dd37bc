package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/models"
	"github.com/ebookstore-next/internal/repository"

	"gorm.io/gorm"
)

type serviceFixture struct {
	db         *gorm.DB
	books      *BookService
	categories *CategoryService
	orders     *OrderService
	favorites  *FavoriteService
}

func setupServiceTest(t *testing.T) *serviceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := models.OpenDB("sqlite", dsn, models.DBPoolConfig{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	bookRepo := repository.NewBookRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	return &serviceFixture{
		db:         db,
		books:      NewBookService(bookRepo, categoryRepo),
		categories: NewCategoryService(categoryRepo, bookRepo, 0),
		orders:     NewOrderService(db, repository.NewOrderRepository(db), bookRepo, userRepo, nil, 0),
		favorites:  NewFavoriteService(repository.NewFavoriteRepository(db), bookRepo),
	}
}

func mustMoney(t *testing.T, raw string) models.Money {
	t.Helper()
	m, err := models.ParseMoney(raw)
	if err != nil {
		t.Fatalf("parse money %q failed: %v", raw, err)
	}
	return m
}

func (f *serviceFixture) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", Role: constants.RoleUser}
	if err := f.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (f *serviceFixture) createBook(t *testing.T, title, price string) *models.Book {
	t.Helper()
	var category models.Category
	if err := f.db.FirstOrCreate(&category, models.Category{Name: "Roman"}).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	book, err := f.books.Create(BookInput{
		Title:      title,
		Author:     "Yazar",
		Price:      mustMoney(t, price),
		Stock:      20,
		CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("create book failed: %v", err)
	}
	return book
}
