package web

import (
	"net/http"
	"strings"

	"github.com/ebookstore-next/internal/config"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/metrics"
	"github.com/ebookstore-next/internal/router"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化前台站点路由
func SetupRouter(cfg *config.Config, h *Handler, m *metrics.Metrics) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(router.RequestIDMiddleware())
	r.Use(router.LoggerMiddleware(log))
	r.Use(m.Middleware("storefront"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics.Enabled && m != nil {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(m.Handler()))
	}

	site := r.Group("")
	site.Use(h.SessionMiddleware())
	{
		site.GET("/", h.Home)
		site.GET("/books", h.Books)
		site.GET("/books/:id", h.BookDetail)
		site.POST("/books/:id/cart", h.AddToCart)
		site.GET("/categories", h.Categories)
		site.GET("/categories/:id", h.CategoryDetail)

		site.GET("/cart", h.Cart)
		site.GET("/cart/count", h.CartCount)
		site.POST("/cart/update", h.UpdateCart)
		site.POST("/cart/remove", h.RemoveFromCart)
		site.POST("/cart/clear", h.ClearCart)

		site.GET("/account/login", h.LoginPage)
		site.POST("/account/login", h.Login)
		site.POST("/account/logout", h.Logout)
		site.GET("/account/access-denied", h.AccessDenied)

		member := site.Group("")
		member.Use(h.RequireUser())
		{
			member.POST("/books/:id/favorite", h.AddFavorite)
			member.GET("/checkout", h.Checkout)
			member.POST("/checkout", h.SubmitCheckout)
			member.GET("/checkout/confirmed/:id", h.Confirmed)
		}

		admin := site.Group("/admin")
		admin.Use(h.RequireAdmin())
		{
			admin.GET("", h.AdminDashboard)
		}
	}
	r.NoRoute(h.SessionMiddleware(), h.NotFound)

	return r
}
