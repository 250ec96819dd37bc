package service

import (
	"errors"
	"testing"

	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/models"
)

func TestOrderCreateStoresPriceSnapshot(t *testing.T) {
	f := setupServiceTest(t)
	user := f.createUser(t, "siparis@example.com")
	bookA := f.createBook(t, "Kürk Mantolu Madonna", "10.00")
	bookB := f.createBook(t, "Çalıkuşu", "25.00")

	input := CreateOrderInput{
		UserID:          user.ID,
		DeliveryAddress: "Bağdat Cad. No:10 Kadıköy İstanbul",
		TotalAmount:     mustMoney(t, "44.00"),
		Lines: []CreateOrderLine{
			{BookID: bookA.ID, Quantity: 2, UnitPrice: mustMoney(t, "9.50"), TotalPrice: mustMoney(t, "19.00")},
			{BookID: bookB.ID, Quantity: 1, UnitPrice: mustMoney(t, "25.00"), TotalPrice: mustMoney(t, "25.00")},
		},
	}
	order, err := f.orders.Create(Actor{UserID: user.ID, Role: constants.RoleUser}, input)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("new order should be pending, got %s", order.Status)
	}

	got, err := f.orders.GetByID(Actor{UserID: user.ID}, order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(got.Details) != 2 {
		t.Fatalf("want 2 details got %d", len(got.Details))
	}
	if got.Details[0].UnitPrice.String() != "9.50" {
		t.Fatalf("unit price snapshot should be kept, got %s", got.Details[0].UnitPrice.String())
	}
	if got.TotalAmount.String() != "44.00" {
		t.Fatalf("total want 44.00 got %s", got.TotalAmount.String())
	}
}

func TestOrderCreateRejectsInconsistentTotals(t *testing.T) {
	f := setupServiceTest(t)
	user := f.createUser(t, "hatali@example.com")
	book := f.createBook(t, "Sefiller", "30.00")
	actor := Actor{UserID: user.ID}

	cases := []struct {
		name  string
		input CreateOrderInput
	}{
		{
			name:  "empty_lines",
			input: CreateOrderInput{UserID: user.ID, TotalAmount: mustMoney(t, "0")},
		},
		{
			name: "line_total_mismatch",
			input: CreateOrderInput{UserID: user.ID, TotalAmount: mustMoney(t, "30.00"), Lines: []CreateOrderLine{
				{BookID: book.ID, Quantity: 2, UnitPrice: mustMoney(t, "30.00"), TotalPrice: mustMoney(t, "30.00")},
			}},
		},
		{
			name: "order_total_mismatch",
			input: CreateOrderInput{UserID: user.ID, TotalAmount: mustMoney(t, "59.99"), Lines: []CreateOrderLine{
				{BookID: book.ID, Quantity: 2, UnitPrice: mustMoney(t, "30.00"), TotalPrice: mustMoney(t, "60.00")},
			}},
		},
		{
			name: "zero_quantity",
			input: CreateOrderInput{UserID: user.ID, TotalAmount: mustMoney(t, "0"), Lines: []CreateOrderLine{
				{BookID: book.ID, Quantity: 0, UnitPrice: mustMoney(t, "30.00"), TotalPrice: mustMoney(t, "0")},
			}},
		},
		{
			name: "unknown_book",
			input: CreateOrderInput{UserID: user.ID, TotalAmount: mustMoney(t, "1.00"), Lines: []CreateOrderLine{
				{BookID: 9999, Quantity: 1, UnitPrice: mustMoney(t, "1.00"), TotalPrice: mustMoney(t, "1.00")},
			}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.orders.Create(actor, tc.input); !errors.Is(err, ErrInvalidOrder) {
				t.Fatalf("expected ErrInvalidOrder, got %v", err)
			}
		})
	}

	var count int64
	if err := f.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("no order should be persisted, got %d", count)
	}
}

func TestOrderOwnershipIsEnforced(t *testing.T) {
	f := setupServiceTest(t)
	owner := f.createUser(t, "sahip@example.com")
	other := f.createUser(t, "diger@example.com")
	book := f.createBook(t, "Beyaz Kale", "15.00")

	input := CreateOrderInput{
		UserID:          owner.ID,
		DeliveryAddress: "Kızılay Meydanı Ankara",
		TotalAmount:     mustMoney(t, "15.00"),
		Lines:           []CreateOrderLine{{BookID: book.ID, Quantity: 1, UnitPrice: mustMoney(t, "15.00"), TotalPrice: mustMoney(t, "15.00")}},
	}
	if _, err := f.orders.Create(Actor{UserID: other.ID}, input); !errors.Is(err, ErrForbidden) {
		t.Fatalf("creating for another user should be forbidden, got %v", err)
	}
	order, err := f.orders.Create(Actor{UserID: owner.ID}, input)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := f.orders.GetByID(Actor{UserID: other.ID}, order.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("reading another user's order should be forbidden, got %v", err)
	}
	if _, _, err := f.orders.ListByUser(Actor{UserID: other.ID}, owner.ID, 1, 20); !errors.Is(err, ErrForbidden) {
		t.Fatalf("listing another user's orders should be forbidden, got %v", err)
	}
	if _, err := f.orders.GetByID(Actor{UserID: other.ID, Role: constants.RoleAdmin}, order.ID); err != nil {
		t.Fatalf("admin should read any order: %v", err)
	}
}

func TestOrderStatusCancelAndDelete(t *testing.T) {
	f := setupServiceTest(t)
	user := f.createUser(t, "durum@example.com")
	book := f.createBook(t, "Fareler ve İnsanlar", "12.00")
	order, err := f.orders.Create(Actor{UserID: user.ID}, CreateOrderInput{
		UserID:          user.ID,
		DeliveryAddress: "Alsancak Kordon İzmir",
		TotalAmount:     mustMoney(t, "12.00"),
		Lines:           []CreateOrderLine{{BookID: book.ID, Quantity: 1, UnitPrice: mustMoney(t, "12.00"), TotalPrice: mustMoney(t, "12.00")}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := f.orders.UpdateStatus(order.ID, "Shipped"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("unknown status should be rejected, got %v", err)
	}
	cancelled, err := f.orders.CancelIfPending(order.ID)
	if err != nil || !cancelled {
		t.Fatalf("pending order should be cancelled: cancelled=%v err=%v", cancelled, err)
	}
	cancelled, err = f.orders.CancelIfPending(order.ID)
	if err != nil || cancelled {
		t.Fatalf("second cancel should be a no-op: cancelled=%v err=%v", cancelled, err)
	}
	updated, err := f.orders.UpdateStatus(order.ID, constants.OrderStatusCompleted)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusCompleted {
		t.Fatalf("status want Completed got %s", updated.Status)
	}

	if err := f.orders.Delete(order.ID); err != nil {
		t.Fatalf("delete order failed: %v", err)
	}
	if err := f.orders.Delete(order.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting twice should be not found, got %v", err)
	}
	var details int64
	if err := f.db.Model(&models.OrderDetail{}).Count(&details).Error; err != nil {
		t.Fatalf("count details failed: %v", err)
	}
	if details != 0 {
		t.Fatalf("details should be removed with the order, got %d", details)
	}
}
