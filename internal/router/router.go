package router

import (
	"context"
	"strings"
	"time"

	"github.com/ebookstore-next/internal/cache"
	"github.com/ebookstore-next/internal/config"
	adminhandlers "github.com/ebookstore-next/internal/http/handlers/admin"
	publichandlers "github.com/ebookstore-next/internal/http/handlers/public"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/models"
	"github.com/ebookstore-next/internal/provider"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// SetupRouter 初始化 REST API 路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	loginRule := RateLimitRule{
		Prefix:        cache.Key("rate:login"),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_rate_limited",
	}
	registerRule := loginRule
	registerRule.Prefix = cache.Key("rate:register")

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(c.Metrics.Middleware("api"))

	r.GET("/health", healthHandler)
	if cfg.Metrics.Enabled && c.Metrics != nil {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(c.Metrics.Handler()))
	}

	api := r.Group("/api/v1")
	{
		// 目录（匿名可访问）
		api.GET("/books", publicHandler.GetBooks)
		api.GET("/books/:id", publicHandler.GetBook)
		api.GET("/books/category/:id", publicHandler.GetBooksByCategory)
		api.GET("/categories", publicHandler.GetCategories)
		api.GET("/categories/:id", publicHandler.GetCategory)

		auth := api.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(cache.Client(), registerRule, KeyByIPAndJSONField("email")), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		user := api.Group("")
		user.Use(UserJWTAuthMiddleware(c.UserAuthService, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)

			user.GET("/favorites/user/:user_id", publicHandler.ListUserFavorites)
			user.POST("/favorites", publicHandler.CreateFavorite)
			user.DELETE("/favorites/:id", publicHandler.DeleteFavorite)
			user.DELETE("/favorites/user/:user_id/book/:book_id", publicHandler.DeleteUserBookFavorite)

			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.GET("/orders/user/:user_id", publicHandler.ListUserOrders)
		}

		admin := api.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(c.UserAuthService, c.UserRepo))
		admin.Use(AdminRBACMiddleware(c.AuthzService))
		{
			admin.GET("/dashboard", adminHandler.GetDashboardOverview)

			admin.GET("/books", adminHandler.GetAdminBooks)
			admin.POST("/books", adminHandler.CreateBook)
			admin.GET("/books/:id", adminHandler.GetAdminBook)
			admin.PUT("/books/:id", adminHandler.UpdateBook)
			admin.DELETE("/books/:id", adminHandler.DeleteBook)

			admin.GET("/categories", adminHandler.GetAdminCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PUT("/orders/:id", adminHandler.AdminUpdateOrderStatus)
			admin.DELETE("/orders/:id", adminHandler.AdminDeleteOrder)

			admin.GET("/users", adminHandler.GetAdminUsers)
			admin.GET("/users/:id/roles", adminHandler.GetAuthzUserRoles)
			admin.PUT("/users/:id/roles", adminHandler.SetAuthzUserRoles)

			admin.GET("/authz/me", adminHandler.GetAuthzMe)
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
		}
	}

	return r
}

func healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := "ok"
	dbStatus := "ok"
	if models.DB == nil {
		dbStatus = "unavailable"
		status = "degraded"
	} else if sqlDB, err := models.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "unavailable"
		status = "degraded"
	}

	redisStatus := "disabled"
	if cache.Enabled() {
		redisStatus = "ok"
		if err := cache.Ping(ctx); err != nil {
			logger.Warnw("health_redis_ping_failed", "error", err)
			redisStatus = "unavailable"
			status = "degraded"
		}
	}

	c.JSON(200, gin.H{
		"status":   status,
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
