package repository

import (
	"testing"
	"time"

	"github.com/ebookstore-next/internal/constants"
)

func TestDashboardOverviewAggregates(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewDashboardRepository(db)
	orders := NewOrderRepository(db)

	user := createTestUser(t, db, "dash@example.com")
	category := createTestCategory(t, db, "Teknoloji")
	book := createTestBook(t, db, category.ID, "Temiz Kod", "Martin", "12.50", 3, true, time.Now())
	createTestBook(t, db, category.ID, "Eski", "x", "5.00", 40, false, time.Now())

	createTestOrder(t, db, orders, user.ID, book.ID, 2, "12.50")
	completed := createTestOrder(t, db, orders, user.ID, book.ID, 1, "12.50")
	if _, err := orders.UpdateStatus(completed.ID, constants.OrderStatusCompleted); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	overview, err := repo.GetOverview()
	if err != nil {
		t.Fatalf("get overview failed: %v", err)
	}
	if overview.TotalBooks != 2 || overview.ActiveBooks != 1 {
		t.Fatalf("unexpected book counts: %+v", overview)
	}
	if overview.TotalOrders != 2 || overview.PendingOrders != 1 {
		t.Fatalf("unexpected order counts: %+v", overview)
	}
	if overview.TotalCategories != 1 || overview.TotalUsers != 1 {
		t.Fatalf("unexpected category/user counts: %+v", overview)
	}
	if overview.TotalRevenue.String() != "37.50" {
		t.Fatalf("revenue want 37.50 got %s", overview.TotalRevenue.String())
	}

	recent, err := repo.GetRecentOrders(5)
	if err != nil {
		t.Fatalf("get recent orders failed: %v", err)
	}
	if len(recent) != 2 || recent[0].User == nil {
		t.Fatalf("unexpected recent orders: %+v", recent)
	}

	low, err := repo.GetLowStockBooks(constants.LowStockThreshold)
	if err != nil {
		t.Fatalf("get low stock failed: %v", err)
	}
	if len(low) != 1 || low[0].ID != book.ID {
		t.Fatalf("unexpected low stock books: %+v", low)
	}
}
