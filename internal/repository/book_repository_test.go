package repository

import (
	"testing"
	"time"

	"github.com/ebookstore-next/internal/constants"
)

func TestBookListFiltersActiveCategoryAndSearch(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewBookRepository(db)
	now := time.Now()

	novel := createTestCategory(t, db, "Roman")
	science := createTestCategory(t, db, "Bilim")
	createTestBook(t, db, novel.ID, "Suç ve Ceza", "Dostoyevski", "45.00", 20, true, now.Add(-3*time.Hour))
	createTestBook(t, db, novel.ID, "Karamazov Kardeşler", "Dostoyevski", "60.00", 5, false, now.Add(-2*time.Hour))
	createTestBook(t, db, science.ID, "Kozmos", "Carl Sagan", "55.00", 12, true, now.Add(-time.Hour))

	books, total, err := repo.List(BookListFilter{OnlyActive: true})
	if err != nil {
		t.Fatalf("list books failed: %v", err)
	}
	if total != 2 || len(books) != 2 {
		t.Fatalf("active books want 2 got total=%d len=%d", total, len(books))
	}
	if books[0].Title != "Kozmos" {
		t.Fatalf("newest first expected, got %s", books[0].Title)
	}

	books, total, err = repo.List(BookListFilter{OnlyActive: true, CategoryID: novel.ID})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 1 || books[0].Title != "Suç ve Ceza" {
		t.Fatalf("unexpected category result: total=%d books=%+v", total, books)
	}

	books, total, err = repo.List(BookListFilter{Search: "SAGAN"})
	if err != nil {
		t.Fatalf("search books failed: %v", err)
	}
	if total != 1 || books[0].Author != "Carl Sagan" {
		t.Fatalf("author search failed: total=%d", total)
	}

	books, total, err = repo.List(BookListFilter{Search: "dostoyevski"})
	if err != nil {
		t.Fatalf("search inactive failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("search without active filter want 2 got %d", total)
	}
}

func TestBookListSortAndPagination(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewBookRepository(db)
	now := time.Now()
	category := createTestCategory(t, db, "Tarih")
	createTestBook(t, db, category.ID, "B", "x", "30.00", 1, true, now)
	createTestBook(t, db, category.ID, "A", "x", "10.00", 1, true, now)
	createTestBook(t, db, category.ID, "C", "x", "20.00", 1, true, now)

	books, _, err := repo.List(BookListFilter{OrderBy: constants.SortPriceAsc})
	if err != nil {
		t.Fatalf("list sorted failed: %v", err)
	}
	if books[0].Title != "A" || books[2].Title != "B" {
		t.Fatalf("price asc order broken: %s %s %s", books[0].Title, books[1].Title, books[2].Title)
	}

	books, total, err := repo.List(BookListFilter{OrderBy: constants.SortNameDesc, Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list page failed: %v", err)
	}
	if total != 3 || len(books) != 1 || books[0].Title != "A" {
		t.Fatalf("unexpected second page: total=%d books=%+v", total, books)
	}
}

func TestBookDeactivateKeepsRow(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewBookRepository(db)
	category := createTestCategory(t, db, "Teknoloji")
	book := createTestBook(t, db, category.ID, "Go", "Pike", "99.90", 3, true, time.Now())

	affected, err := repo.Deactivate(book.ID)
	if err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("deactivate affected want 1 got %d", affected)
	}

	got, err := repo.GetByID(book.ID)
	if err != nil {
		t.Fatalf("get book failed: %v", err)
	}
	if got == nil || got.IsActive {
		t.Fatalf("book should still exist and be inactive: %+v", got)
	}
	if got.Category == nil || got.Category.Name != "Teknoloji" {
		t.Fatalf("category should be preloaded")
	}

	count, err := repo.CountByCategory(category.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}

	missing, err := repo.GetByID(9999)
	if err != nil || missing != nil {
		t.Fatalf("missing book should return nil, nil: %v %v", missing, err)
	}
}

func TestBookListLowStock(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewBookRepository(db)
	category := createTestCategory(t, db, "Roman")
	createTestBook(t, db, category.ID, "Az", "x", "10.00", 2, true, time.Now())
	createTestBook(t, db, category.ID, "Çok", "x", "10.00", 50, true, time.Now())
	createTestBook(t, db, category.ID, "Pasif", "x", "10.00", 1, false, time.Now())

	books, err := repo.ListLowStock(constants.LowStockThreshold, 0)
	if err != nil {
		t.Fatalf("list low stock failed: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Az" {
		t.Fatalf("unexpected low stock books: %+v", books)
	}
}
