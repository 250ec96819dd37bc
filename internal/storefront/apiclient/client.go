// Package apiclient 前台调用 REST API 的客户端
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ebookstore-next/internal/storefront"
)

const (
	defaultTimeout  = 10 * time.Second
	listPageSize    = 100
	maxListPages    = 50
	maxResponseSize = 8 << 20
)

// ErrConflict 资源已存在（例如重复收藏）
var ErrConflict = errors.New("conflict")

// Client REST API 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New 创建客户端，baseURL 形如 http://127.0.0.1:8080/api/v1
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
	Pagination *pagination     `json:"pagination,omitempty"`
}

type pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// APIError 接口返回的业务错误
type APIError struct {
	Code int
	Msg  string
	kind error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Msg)
}

// Unwrap 映射到前台错误分类
func (e *APIError) Unwrap() error {
	return e.kind
}

// classify 业务码映射为前台错误
func classify(code int, msg string) error {
	var kind error
	switch code {
	case http.StatusNotFound:
		kind = storefront.ErrNotFound
	case http.StatusBadRequest:
		kind = storefront.ErrValidationFailure
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = storefront.ErrUnauthorized
	case http.StatusConflict:
		kind = ErrConflict
	default:
		kind = storefront.ErrStoreFailure
	}
	return &APIError{Code: code, Msg: msg, kind: kind}
}

func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body interface{}, dest interface{}) (*envelope, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed: %v", storefront.ErrStoreFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token = strings.TrimSpace(token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", storefront.ErrStoreFailure, method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response failed: %v", storefront.ErrStoreFailure, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classify(resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("%w: decode envelope: %v", storefront.ErrStoreFailure, err)
	}
	if env.StatusCode != 0 {
		return nil, classify(env.StatusCode, env.Msg)
	}
	if dest != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return nil, fmt.Errorf("%w: decode data: %v", storefront.ErrStoreFailure, err)
		}
	}
	return &env, nil
}

// GetBook 图书详情
func (c *Client) GetBook(ctx context.Context, id uint) (*storefront.Book, error) {
	var book storefront.Book
	if _, err := c.do(ctx, http.MethodGet, "/books/"+strconv.FormatUint(uint64(id), 10), "", nil, nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// ListBooks 上架图书列表，逐页读取
func (c *Client) ListBooks(ctx context.Context, filter storefront.BookFilter) ([]storefront.Book, error) {
	query := url.Values{}
	if filter.CategoryID != 0 {
		query.Set("category_id", strconv.FormatUint(uint64(filter.CategoryID), 10))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query.Set("search", search)
	}
	query.Set("page_size", strconv.Itoa(listPageSize))

	all := make([]storefront.Book, 0)
	for page := 1; page <= maxListPages; page++ {
		query.Set("page", strconv.Itoa(page))
		var books []storefront.Book
		env, err := c.do(ctx, http.MethodGet, "/books", "", query, nil, &books)
		if err != nil {
			return nil, err
		}
		all = append(all, books...)
		if env.Pagination == nil || int64(page) >= env.Pagination.TotalPage || len(books) == 0 {
			break
		}
	}
	return all, nil
}

// ListBooksByCategory 分类下的上架图书
func (c *Client) ListBooksByCategory(ctx context.Context, categoryID uint) ([]storefront.Book, error) {
	var books []storefront.Book
	if _, err := c.do(ctx, http.MethodGet, "/books/category/"+strconv.FormatUint(uint64(categoryID), 10), "", nil, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// ListCategories 分类列表
func (c *Client) ListCategories(ctx context.Context) ([]storefront.Category, error) {
	var categories []storefront.Category
	if _, err := c.do(ctx, http.MethodGet, "/categories", "", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory 分类详情（含图书）
func (c *Client) GetCategory(ctx context.Context, id uint) (*storefront.Category, error) {
	var category storefront.Category
	if _, err := c.do(ctx, http.MethodGet, "/categories/"+strconv.FormatUint(uint64(id), 10), "", nil, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateOrder 提交订单
func (c *Client) CreateOrder(ctx context.Context, token string, order storefront.Order) (*storefront.Order, error) {
	var created storefront.Order
	if _, err := c.do(ctx, http.MethodPost, "/orders", token, nil, order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetOrder 订单详情
func (c *Client) GetOrder(ctx context.Context, token string, id uint) (*storefront.Order, error) {
	var order storefront.Order
	if _, err := c.do(ctx, http.MethodGet, "/orders/"+strconv.FormatUint(uint64(id), 10), token, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// AddFavorite 收藏图书，重复收藏返回 ErrConflict
func (c *Client) AddFavorite(ctx context.Context, token string, userID, bookID uint) error {
	body := map[string]uint{"user_id": userID, "book_id": bookID}
	_, err := c.do(ctx, http.MethodPost, "/favorites", token, nil, body, nil)
	return err
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID        uint   `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
	} `json:"user"`
}

// Login 登录并返回会话身份
func (c *Client) Login(ctx context.Context, email, password string) (*storefront.Principal, error) {
	var auth authResponse
	body := map[string]string{"email": email, "password": password}
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", "", nil, body, &auth); err != nil {
		return nil, err
	}
	if auth.Token == "" || auth.User.ID == 0 {
		return nil, fmt.Errorf("%w: empty login response", storefront.ErrStoreFailure)
	}
	name := strings.TrimSpace(auth.User.FirstName + " " + auth.User.LastName)
	if name == "" {
		name = auth.User.Email
	}
	return &storefront.Principal{
		UserID: auth.User.ID,
		Email:  auth.User.Email,
		Name:   name,
		Role:   auth.User.Role,
		Token:  auth.Token,
	}, nil
}

// Dashboard 后台总览
type Dashboard struct {
	TotalBooks      int64              `json:"total_books"`
	ActiveBooks     int64              `json:"active_books"`
	TotalCategories int64              `json:"total_categories"`
	TotalOrders     int64              `json:"total_orders"`
	PendingOrders   int64              `json:"pending_orders"`
	TotalUsers      int64              `json:"total_users"`
	TotalRevenue    string             `json:"total_revenue"`
	RecentOrders    []storefront.Order `json:"recent_orders"`
	LowStockBooks   []storefront.Book  `json:"low_stock_books"`
}

// GetDashboard 读取后台总览
func (c *Client) GetDashboard(ctx context.Context, token string) (*Dashboard, error) {
	var dashboard Dashboard
	if _, err := c.do(ctx, http.MethodGet, "/admin/dashboard", token, nil, nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}
