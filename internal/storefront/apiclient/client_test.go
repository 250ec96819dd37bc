package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ebookstore-next/internal/storefront"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, code int, msg string, data interface{}, page map[string]interface{}) {
	body := map[string]interface{}{"status_code": code, "msg": msg, "data": data}
	if page != nil {
		body["pagination"] = page
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func TestGetBookMapsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/books/1":
			writeEnvelope(w, 0, "success", map[string]interface{}{
				"id": 1, "title": "Simyacı", "price": "12.50", "is_active": true,
			}, nil)
		default:
			writeEnvelope(w, 404, "book not found", nil, nil)
		}
	}))
	defer srv.Close()
	client := New(srv.URL+"/api/v1", time.Second)

	book, err := client.GetBook(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Simyacı", book.Title)
	assert.True(t, book.Price.Equal(decimal.RequireFromString("12.50")))

	_, err = client.GetBook(context.Background(), 2)
	assert.True(t, errors.Is(err, storefront.ErrNotFound))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Code)
}

func TestListBooksReadsAllPages(t *testing.T) {
	var pages []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		assert.Equal(t, "3", r.URL.Query().Get("category_id"))
		n, _ := strconv.Atoi(page)
		writeEnvelope(w, 0, "success", []map[string]interface{}{
			{"id": n, "title": "Kitap " + page, "price": "1.00", "is_active": true},
		}, map[string]interface{}{"page": n, "page_size": 100, "total": 2, "total_page": 2})
	}))
	defer srv.Close()

	books, err := New(srv.URL, time.Second).ListBooks(context.Background(), storefront.BookFilter{CategoryID: 3})
	require.NoError(t, err)
	assert.Len(t, books, 2)
	assert.Equal(t, []string{"1", "2"}, pages)
}

func TestCreateOrderSendsTokenAndSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		details := body["details"].([]interface{})
		line := details[0].(map[string]interface{})
		assert.Equal(t, "10", line["unit_price"])
		writeEnvelope(w, 0, "success", map[string]interface{}{
			"id": 77, "user_id": 5, "total_amount": "20.00", "status": "Pending",
		}, nil)
	}))
	defer srv.Close()

	ctx := WithRequestID(context.Background(), "req-1")
	order, err := New(srv.URL, time.Second).CreateOrder(ctx, "tok", storefront.Order{
		UserID:      5,
		TotalAmount: decimal.NewFromInt(20),
		Lines: []storefront.OrderLine{
			{BookID: 7, Quantity: 2, UnitPrice: decimal.NewFromInt(10), TotalPrice: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(77), order.ID)
}

func TestErrorClassification(t *testing.T) {
	cases := map[int]error{
		400: storefront.ErrValidationFailure,
		401: storefront.ErrUnauthorized,
		403: storefront.ErrUnauthorized,
		409: ErrConflict,
		500: storefront.ErrStoreFailure,
	}
	for code, want := range cases {
		assert.True(t, errors.Is(classify(code, "x"), want), "code %d", code)
	}

	_, err := New("http://127.0.0.1:1", 200*time.Millisecond).ListCategories(context.Background())
	assert.True(t, errors.Is(err, storefront.ErrStoreFailure))
}

func TestLoginBuildsPrincipal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 0, "success", map[string]interface{}{
			"token": "jwt-token",
			"user":  map[string]interface{}{"id": 3, "email": "ayse@example.com", "first_name": "Ayşe", "last_name": "Yılmaz", "role": "User"},
		}, nil)
	}))
	defer srv.Close()

	p, err := New(srv.URL, time.Second).Login(context.Background(), "ayse@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", p.Name)
	assert.Equal(t, "jwt-token", p.Token)
	assert.False(t, p.IsAdmin())
}
