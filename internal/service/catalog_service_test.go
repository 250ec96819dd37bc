package service

import (
	"errors"
	"testing"

	"github.com/ebookstore-next/internal/constants"
)

func TestBookCreateInactiveAndSoftDelete(t *testing.T) {
	f := setupServiceTest(t)
	category, err := f.categories.Create(CategoryInput{Name: "Bilim"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	inactive := false
	book, err := f.books.Create(BookInput{
		Title:      "Zamanın Kısa Tarihi",
		Author:     "Hawking",
		Price:      mustMoney(t, "42.00"),
		CategoryID: category.ID,
		IsActive:   &inactive,
	})
	if err != nil {
		t.Fatalf("create book failed: %v", err)
	}
	got, err := f.books.GetByID(book.ID)
	if err != nil {
		t.Fatalf("get book failed: %v", err)
	}
	if got.IsActive {
		t.Fatalf("book should be created inactive")
	}
	if got.ImageURL != constants.DefaultBookImage {
		t.Fatalf("default image expected, got %s", got.ImageURL)
	}

	active := f.createBook(t, "Kozmos", "55.00")
	if err := f.books.Delete(active.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	books, total, err := f.books.ListPublic(0, "", "", 1, 20)
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if total != 0 || len(books) != 0 {
		t.Fatalf("inactive books should be hidden, got %d", total)
	}
	if _, err := f.books.GetByID(active.ID); err != nil {
		t.Fatalf("soft deleted book should still be readable by id: %v", err)
	}
	if err := f.books.Delete(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting unknown book should be not found, got %v", err)
	}
}

func TestBookCreateRequiresCategory(t *testing.T) {
	f := setupServiceTest(t)
	_, err := f.books.Create(BookInput{Title: "x", Author: "y", Price: mustMoney(t, "1.00"), CategoryID: 42})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	_, err = f.books.Create(BookInput{Title: " ", Author: "y", Price: mustMoney(t, "1.00"), CategoryID: 42})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCategoryDeleteRestrictedWhenBooksExist(t *testing.T) {
	f := setupServiceTest(t)
	book := f.createBook(t, "Aşk-ı Memnu", "20.00")
	if err := f.books.Delete(book.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	if err := f.categories.Delete(book.CategoryID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("category with inactive books should stay, got %v", err)
	}

	empty, err := f.categories.Create(CategoryInput{Name: "Boş"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if _, err := f.categories.Create(CategoryInput{Name: "boş"}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("duplicate category name should be rejected, got %v", err)
	}
	if err := f.categories.Delete(empty.ID); err != nil {
		t.Fatalf("delete empty category failed: %v", err)
	}
	if err := f.categories.Delete(empty.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting twice should be not found, got %v", err)
	}
}

func TestCategoryGetWithActiveBooks(t *testing.T) {
	f := setupServiceTest(t)
	kept := f.createBook(t, "Yaban", "18.00")
	hidden := f.createBook(t, "Kiralık Konak", "16.00")
	if err := f.books.Delete(hidden.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	category, err := f.categories.GetWithBooks(kept.CategoryID)
	if err != nil {
		t.Fatalf("get category failed: %v", err)
	}
	if len(category.Books) != 1 || category.Books[0].ID != kept.ID {
		t.Fatalf("only active books expected: %+v", category.Books)
	}
}
