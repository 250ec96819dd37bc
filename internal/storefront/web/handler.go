// Package web 服务端渲染的前台站点
package web

import (
	"context"
	"errors"
	"html/template"

	"github.com/ebookstore-next/internal/config"
	"github.com/ebookstore-next/internal/metrics"
	"github.com/ebookstore-next/internal/storefront"
	"github.com/ebookstore-next/internal/storefront/apiclient"
	"github.com/ebookstore-next/internal/storefront/cart"
	"github.com/ebookstore-next/internal/storefront/checkout"
	"github.com/ebookstore-next/internal/storefront/session"
)

// API 前台依赖的接口集合，由 apiclient.Client 实现
type API interface {
	storefront.CatalogStore
	storefront.OrderStore
	GetOrder(ctx context.Context, token string, id uint) (*storefront.Order, error)
	AddFavorite(ctx context.Context, token string, userID, bookID uint) error
	Login(ctx context.Context, email, password string) (*storefront.Principal, error)
	GetDashboard(ctx context.Context, token string) (*apiclient.Dashboard, error)
}

// Deps 前台依赖
type Deps struct {
	Config   config.StorefrontConfig
	API      API
	Sessions session.Store
	Metrics  *metrics.Metrics
}

// Handler 前台页面处理器
type Handler struct {
	cfg       config.StorefrontConfig
	api       API
	sessions  session.Store
	carts     *cart.Service
	checkout  *checkout.Workflow
	templates map[string]*template.Template
}

// New 创建前台处理器
func New(deps Deps) (*Handler, error) {
	if deps.API == nil {
		return nil, errors.New("storefront api is nil")
	}
	if deps.Sessions == nil {
		return nil, errors.New("storefront session store is nil")
	}
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	carts := cart.NewService(deps.Sessions, deps.API)
	return &Handler{
		cfg:       deps.Config,
		api:       deps.API,
		sessions:  deps.Sessions,
		carts:     carts,
		checkout:  checkout.NewWorkflow(carts, deps.API, deps.Metrics),
		templates: templates,
	}, nil
}
