package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/models"

	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := models.OpenDB("sqlite", dsn, models.DBPoolConfig{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func mustMoney(t *testing.T, raw string) models.Money {
	t.Helper()
	m, err := models.ParseMoney(raw)
	if err != nil {
		t.Fatalf("parse money %q failed: %v", raw, err)
	}
	return m
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func createTestBook(t *testing.T, db *gorm.DB, categoryID uint, title, author, price string, stock int, active bool, createdAt time.Time) *models.Book {
	t.Helper()
	book := &models.Book{
		Title:      title,
		Author:     author,
		Price:      mustMoney(t, price),
		Stock:      stock,
		CategoryID: categoryID,
		IsActive:   true,
		CreatedAt:  createdAt,
	}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("create book failed: %v", err)
	}
	if !active {
		if err := db.Model(book).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate book failed: %v", err)
		}
		book.IsActive = false
	}
	return book
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", Role: constants.RoleUser}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}
