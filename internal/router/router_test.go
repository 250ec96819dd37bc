package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ebookstore-next/internal/config"
	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/models"
	"github.com/ebookstore-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type apiEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupRouterTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := models.InitDefaultAdmin(db, constants.DefaultAdminEmail, constants.DefaultAdminPassword); err != nil {
		t.Fatalf("init admin failed: %v", err)
	}
	prevDB := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prevDB })

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "debug"},
		JWT:     config.JWTConfig{SecretKey: "router-test-secret", ExpireHours: 1},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	c := provider.NewContainer(cfg)
	t.Cleanup(func() { _ = c.Close() })
	return SetupRouter(cfg, c)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) apiEnvelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s http status want 200 got %d", method, path, w.Code)
	}
	var env apiEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s decode failed: %v body=%s", method, path, err, w.Body.String())
	}
	return env
}

func loginToken(t *testing.T, r *gin.Engine, email, password string) (string, uint) {
	t.Helper()
	env := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if env.StatusCode != 0 {
		t.Fatalf("login failed: %+v", env)
	}
	var data struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode login failed: %v", err)
	}
	return data.Token, data.User.ID
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	r := setupRouterTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"database":"ok"`) {
		t.Fatalf("unexpected health response: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ebookstore_http_requests_total") {
		t.Fatalf("metrics should expose request counter, got %d", w.Code)
	}
}

func TestCatalogOrderFlow(t *testing.T) {
	r := setupRouterTest(t)

	adminToken, _ := loginToken(t, r, constants.DefaultAdminEmail, constants.DefaultAdminPassword)

	env := doJSON(t, r, http.MethodPost, "/api/v1/admin/categories", adminToken, map[string]string{"name": "Roman"})
	if env.StatusCode != 0 {
		t.Fatalf("create category failed: %+v", env)
	}
	var category models.Category
	if err := json.Unmarshal(env.Data, &category); err != nil {
		t.Fatalf("decode category failed: %v", err)
	}

	env = doJSON(t, r, http.MethodPost, "/api/v1/admin/books", adminToken, map[string]interface{}{
		"title":       "Sefiller",
		"author":      "Victor Hugo",
		"price":       "10.00",
		"stock":       20,
		"category_id": category.ID,
	})
	if env.StatusCode != 0 {
		t.Fatalf("create book failed: %+v", env)
	}
	var book models.Book
	if err := json.Unmarshal(env.Data, &book); err != nil {
		t.Fatalf("decode book failed: %v", err)
	}

	env = doJSON(t, r, http.MethodGet, "/api/v1/books?category_id="+fmt.Sprint(category.ID), "", nil)
	if env.StatusCode != 0 {
		t.Fatalf("list books failed: %+v", env)
	}
	var books []models.Book
	if err := json.Unmarshal(env.Data, &books); err != nil {
		t.Fatalf("decode books failed: %v", err)
	}
	if len(books) != 1 || books[0].ID != book.ID {
		t.Fatalf("unexpected books: %+v", books)
	}

	env = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "reader@example.com",
		"password": "secret123",
	})
	if env.StatusCode != 0 {
		t.Fatalf("register failed: %+v", env)
	}
	userToken, userID := loginToken(t, r, "reader@example.com", "secret123")

	// 普通用户不能访问管理端
	env = doJSON(t, r, http.MethodGet, "/api/v1/admin/books", userToken, nil)
	if env.StatusCode != 403 {
		t.Fatalf("user on admin route want 403 got %d", env.StatusCode)
	}

	orderBody := map[string]interface{}{
		"user_id":          userID,
		"delivery_address": "Istiklal Cd. No:1 Istanbul",
		"total_amount":     "20.00",
		"details": []map[string]interface{}{
			{"book_id": book.ID, "quantity": 2, "unit_price": "10.00", "total_price": "20.00"},
		},
	}
	env = doJSON(t, r, http.MethodPost, "/api/v1/orders", userToken, orderBody)
	if env.StatusCode != 0 {
		t.Fatalf("create order failed: %+v", env)
	}
	var order models.Order
	if err := json.Unmarshal(env.Data, &order); err != nil {
		t.Fatalf("decode order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending || order.TotalAmount.String() != "20.00" {
		t.Fatalf("unexpected order: %+v", order)
	}

	// 总额与明细不符
	orderBody["total_amount"] = "25.00"
	env = doJSON(t, r, http.MethodPost, "/api/v1/orders", userToken, orderBody)
	if env.StatusCode != 400 {
		t.Fatalf("mismatched total want 400 got %d", env.StatusCode)
	}

	env = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "other@example.com",
		"password": "secret123",
	})
	if env.StatusCode != 0 {
		t.Fatalf("register other failed: %+v", env)
	}
	otherToken, _ := loginToken(t, r, "other@example.com", "secret123")
	env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", order.ID), otherToken, nil)
	if env.StatusCode != 403 {
		t.Fatalf("foreign order want 403 got %d", env.StatusCode)
	}

	env = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/admin/orders/%d", order.ID), adminToken, map[string]string{
		"status": constants.OrderStatusCompleted,
	})
	if env.StatusCode != 0 {
		t.Fatalf("admin update status failed: %+v", env)
	}
	env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", order.ID), userToken, nil)
	if err := json.Unmarshal(env.Data, &order); err != nil {
		t.Fatalf("decode order failed: %v", err)
	}
	if order.Status != constants.OrderStatusCompleted {
		t.Fatalf("status want Completed got %s", order.Status)
	}
}

func TestFavoriteRoutes(t *testing.T) {
	r := setupRouterTest(t)
	adminToken, _ := loginToken(t, r, constants.DefaultAdminEmail, constants.DefaultAdminPassword)

	env := doJSON(t, r, http.MethodPost, "/api/v1/admin/categories", adminToken, map[string]string{"name": "Tarih"})
	var category models.Category
	_ = json.Unmarshal(env.Data, &category)
	env = doJSON(t, r, http.MethodPost, "/api/v1/admin/books", adminToken, map[string]interface{}{
		"title": "Nutuk", "author": "Atatürk", "price": "15.50", "stock": 3, "category_id": category.ID,
	})
	var book models.Book
	_ = json.Unmarshal(env.Data, &book)

	doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "fav@example.com", "password": "secret123"})
	token, userID := loginToken(t, r, "fav@example.com", "secret123")

	body := map[string]uint{"user_id": userID, "book_id": book.ID}
	if env := doJSON(t, r, http.MethodPost, "/api/v1/favorites", token, body); env.StatusCode != 0 {
		t.Fatalf("add favorite failed: %+v", env)
	}
	if env := doJSON(t, r, http.MethodPost, "/api/v1/favorites", token, body); env.StatusCode != 409 {
		t.Fatalf("duplicate favorite want 409 got %d", env.StatusCode)
	}

	env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/favorites/user/%d", userID), token, nil)
	var favorites []models.Favorite
	if err := json.Unmarshal(env.Data, &favorites); err != nil {
		t.Fatalf("decode favorites failed: %v", err)
	}
	if len(favorites) != 1 || favorites[0].BookID != book.ID {
		t.Fatalf("unexpected favorites: %+v", favorites)
	}

	path := fmt.Sprintf("/api/v1/favorites/user/%d/book/%d", userID, book.ID)
	if env := doJSON(t, r, http.MethodDelete, path, token, nil); env.StatusCode != 0 {
		t.Fatalf("remove favorite failed: %+v", env)
	}
	if env := doJSON(t, r, http.MethodDelete, path, token, nil); env.StatusCode != 404 {
		t.Fatalf("remove missing favorite want 404 got %d", env.StatusCode)
	}
}
